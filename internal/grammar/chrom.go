package grammar

// humanChromosomes holds the accepted CHROM values: 1-22, X, Y and MT,
// each bare and with a "chr" prefix. Matching is exact. The UCSC spelling
// "chrM" is not an alias of "chrMT" and is rejected.
var humanChromosomes = func() map[string]struct{} {
	names := []string{
		"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
		"11", "12", "13", "14", "15", "16", "17", "18", "19",
		"20", "21", "22", "X", "Y", "MT",
	}

	m := make(map[string]struct{}, 2*len(names))
	for _, n := range names {
		m[n] = struct{}{}
		m["chr"+n] = struct{}{}
	}
	return m
}()

// IsHumanChromosome reports whether s names a human reference chromosome
// (1-22, X, Y, MT), with or without a "chr" prefix. No normalization is
// applied: "Mt" and "1 " are rejected.
func IsHumanChromosome(s string) bool {
	_, ok := humanChromosomes[s]
	return ok
}
