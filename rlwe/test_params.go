package rlwe

// TestParametersLiteral holds a handful of small parameter sets used across
// this workspace's test files, covering both a single-prime P (minimal
// key-switching decomposition) and a two-prime P (finer RNS decomposition).
var TestParametersLiteral = []ParametersLiteral{
	{
		LogN:     10,
		Q:        []uint64{0x200000440001, 0x7fff80001, 0x800280001, 0x7ffd80001, 0x7ffc80001},
		P:        []uint64{0x3ffffffb80001},
		Pow2Base: 16,
	},
	{
		LogN: 10,
		Q:    []uint64{0x200000440001, 0x7fff80001, 0x800280001, 0x7ffd80001, 0x7ffc80001},
		P:    []uint64{0x3ffffffb80001, 0x4000000800001},
	},
}
