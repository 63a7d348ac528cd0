package common

/*
https://en.wikipedia.org/wiki/Decimal_degrees?useskin=vector

Degree precision versus length, at the equator:

	places  decimal degrees  recognizable object        N/S distance
	0       1.0              country or large region    111 km
	1       0.1              large city or district     11.1 km
	2       0.01             town or village            1.11 km
	3       0.001            neighborhood, street       111 m
	4       0.0001           individual street          11.1 m
	5       0.00001          individual trees, houses   1.11 m
	6       0.000001         individual runners         111 mm
*/

const (
	// GPSPrecision2 is the precision for town or village
	GPSPrecision2 = 2
	// GPSPrecision4 is the precision for individual street, large buildings
	GPSPrecision4 = 4
	// GPSPrecision6 is the precision for individual runners
	GPSPrecision6 = 6
)
