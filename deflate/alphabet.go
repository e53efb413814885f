package deflate

// alphabetEntry describes one entry of the RFC 1951 extra-bits
// alphabets used to turn a length/distance symbol into an actual
// run length or back-reference distance.
type alphabetEntry struct {
	ExtraBits uint8
	Base      uint16
}

const lengthSymbolOffset = 257

// lengthAlphabet covers length symbols 257..285.
var lengthAlphabet = [29]alphabetEntry{
	{0, 3}, {0, 4}, {0, 5}, {0, 6}, {0, 7}, {0, 8}, {0, 9}, {0, 10},
	{1, 11}, {1, 13}, {1, 15}, {1, 17},
	{2, 19}, {2, 23}, {2, 27}, {2, 31},
	{3, 35}, {3, 43}, {3, 51}, {3, 59},
	{4, 67}, {4, 83}, {4, 99}, {4, 115},
	{5, 131}, {5, 163}, {5, 195}, {5, 227},
	{0, 258},
}

// distanceAlphabet covers distance symbols 0..29.
var distanceAlphabet = [30]alphabetEntry{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 5}, {1, 7},
	{2, 9}, {2, 13},
	{3, 17}, {3, 25},
	{4, 33}, {4, 49},
	{5, 65}, {5, 97},
	{6, 129}, {6, 193},
	{7, 257}, {7, 385},
	{8, 513}, {8, 769},
	{9, 1025}, {9, 1537},
	{10, 2049}, {10, 3073},
	{11, 4097}, {11, 6145},
	{12, 8193}, {12, 12289},
	{13, 16385}, {13, 24577},
}

// codeLengthPermutation is the order HCLEN code lengths are transmitted
// in for the dynamic-Huffman code-length alphabet (RFC 1951 §3.2.7).
var codeLengthPermutation = [19]uint8{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

var staticLengthTable = mustStaticTable(func() []uint8 {
	lengths := make([]uint8, 288)
	for i := 0; i < 144; i++ {
		lengths[i] = 8
	}
	for i := 144; i < 256; i++ {
		lengths[i] = 9
	}
	for i := 256; i < 280; i++ {
		lengths[i] = 7
	}
	for i := 280; i < 288; i++ {
		lengths[i] = 8
	}
	return lengths
}())

var staticDistanceTable = mustStaticTable(func() []uint8 {
	lengths := make([]uint8, 30)
	for i := range lengths {
		lengths[i] = 5
	}
	return lengths
}())

func mustStaticTable(lengths []uint8) *Table {
	table, err := MakeTable(lengths)
	if err != nil {
		panic(err)
	}
	return InvertBits(table)
}
