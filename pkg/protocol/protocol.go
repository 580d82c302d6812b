// Package protocol implements the Vendapin CTD-202/203 serial packet protocol defined at
// http://www.vendapin.com/Adobe%20files/CTD202-203_API.pdf
//
// Every packet on the wire has the layout
//
//	<STX><ADD><CMD><LEN><DTA...><ETX><CHK>
//
// where CHK is the XOR of every byte from STX through ETX inclusive.
package protocol

import (
	"encoding/hex"
	"strings"
)

const (
	StartOfText = 0x02 // STX
	EndOfText   = 0x03 // ETX

	// DefaultAddress is the device address used when only one dispenser is attached.
	DefaultAddress = 0x01

	// CarriageReturn terminates the boot string the device prints on power up.
	CarriageReturn = 0x0D

	// Frame overhead: STX, ADD, CMD, LEN, ETX, CHK.
	HeaderLength   = 4
	MinFrameLength = 6
	MaxFrameLength = MinFrameLength + 0xFF
)

// EncodeToString renders b as dash separated hex, e.g. 02-01-80-00-03-80.
func EncodeToString(b []byte) string {
	hexDigits := hex.EncodeToString(b)
	var builder strings.Builder
	for i, r := range hexDigits {
		if i > 0 && i%2 == 0 {
			builder.WriteString("-")
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
