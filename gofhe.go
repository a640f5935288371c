/*
Package gofhe is a pure Go implementation of leveled Ring-LWE fully homomorphic
encryption, supporting an integer scheme (BFV-style) and an approximate-number
scheme (CKKS-style) over a shared RNS ring and key-switching core.
*/
package gofhe
