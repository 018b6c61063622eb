// Package paramfile parses PHOEBE session parameter files.
//
// Two encodings are accepted. The keyword format used by .phoebe files:
//
//	# PHOEBE parameter file
//	phoebe_name           = "V1031 Ori"
//	phoebe_lc_filename[1] = "lc_v.dat"
//	phoebe_incl           = 82.5
//
// and a structured YAML or JSON map for .yaml, .yml and .json files, where
// arrays expand to one-based indexed qualifiers.
//
// Open either returns a complete Bundle or a *LoadError; it never returns a
// partially parsed file.
package paramfile
