package protocol

// Checksum returns the XOR of all bytes. The checksum of an empty slice is 0.
func Checksum(bytes []byte) byte {
	var checksum byte
	for _, b := range bytes {
		checksum ^= b
	}

	return checksum
}
