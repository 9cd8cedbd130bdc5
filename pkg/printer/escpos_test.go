package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentStartsWithInit(t *testing.T) {
	d := NewDocument(32)
	assert.Equal(t, []byte{ESC, '@'}, d.Bytes()[:2])
}

func TestNewDocumentDefaultsWidth(t *testing.T) {
	d := NewDocument(0)
	d.Separator('-')

	line := d.Bytes()[2:] // skip init
	assert.Equal(t, bytes.Repeat([]byte{'-'}, 32), line[:len(line)-1])
}

func TestKeyValuePadsToWidth(t *testing.T) {
	d := NewDocument(32)
	d.KeyValue("Subtotal", "Rp100.000")

	line := d.Bytes()[2:] // skip init
	require.Equal(t, byte(LF), line[len(line)-1])
	assert.Len(t, line[:len(line)-1], 32)
	assert.True(t, bytes.HasPrefix(line, []byte("Subtotal")))
	assert.True(t, bytes.HasSuffix(line[:len(line)-1], []byte("Rp100.000")))
}

func TestKeyValueKeepsOneSpaceWhenOverflowing(t *testing.T) {
	d := NewDocument(10)
	d.KeyValue("A long key here", "Rp999.999.999")

	assert.Contains(t, string(d.Bytes()), "A long key here Rp999.999.999")
}

func TestItemLineFormat(t *testing.T) {
	d := NewDocument(32)
	d.ItemLine(2, "Kopi Susu", "30.000")

	line := string(d.Bytes()[2:]) // skip init
	assert.Contains(t, line, "2x Kopi Susu")
	assert.Contains(t, line, "30.000")
	assert.Len(t, line, 33) // width plus line feed
}

func TestQRCodeEmbedsPayload(t *testing.T) {
	payload := "TRX-20260830-AB12CD34|104500|c2ln"
	d := NewDocument(32)
	d.QRCode(payload, 5)

	raw := d.Bytes()
	assert.True(t, bytes.Contains(raw, []byte(payload)))
	// Module size byte travels in the GS ( k size command
	assert.True(t, bytes.Contains(raw, []byte{GS, '(', 'k', 3, 0, 49, 67, 5}))
}

func TestQRCodeClampsBadSize(t *testing.T) {
	d := NewDocument(32)
	d.QRCode("x", 0)

	assert.True(t, bytes.Contains(d.Bytes(), []byte{GS, '(', 'k', 3, 0, 49, 67, 4}))
}

func TestResetClearsBuffer(t *testing.T) {
	d := NewDocument(32)
	d.Text("hello")
	d.Reset()

	// Reset reinitializes, leaving only the init command
	assert.Equal(t, []byte{ESC, '@'}, d.Bytes())
}
