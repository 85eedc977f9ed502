package types

import (
	"bytes"
	"testing"

	"git.gammaspectra.live/P2Pool/clsag/utils"
)

const testHashHex = "8b4f379af1e393fd60f2e1c0b5de2573a7b836ea2b2bbf9dcb740cd6e2408fc0"

func TestHashFromString(t *testing.T) {
	h, err := HashFromString(testHashHex)
	if err != nil {
		t.Fatal(err)
	}

	if h.String() != testHashHex {
		t.Fatalf("expected %s, got %s", testHashHex, h)
	}

	if MustHashFromString(testHashHex) != h {
		t.Fatal("hash mismatch")
	}

	if _, err = HashFromString("abc"); err == nil {
		t.Fatal("wrong size accepted")
	}
	if _, err = HashFromString(testHashHex[:62] + "zz"); err == nil {
		t.Fatal("invalid hex accepted")
	}
}

func TestHashFromBytes(t *testing.T) {
	h := MustHashFromString(testHashHex)

	if HashFromBytes(h.Slice()) != h {
		t.Fatal("hash mismatch")
	}
	if HashFromBytes([]byte{1, 2, 3}) != ZeroHash {
		t.Fatal("wrong size did not map to the zero hash")
	}
}

func TestHashJSON(t *testing.T) {
	h := MustHashFromString(testHashHex)

	buf, err := utils.MarshalJSON(h)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "\""+testHashHex+"\"" {
		t.Fatalf("unexpected encoding %s", buf)
	}

	var back Hash
	if err = utils.UnmarshalJSON(buf, &back); err != nil {
		t.Fatal(err)
	}
	if back != h {
		t.Fatal("round trip altered the hash")
	}

	if err = back.UnmarshalJSON([]byte("\"abc\"")); err == nil {
		t.Fatal("wrong size accepted")
	}
}

func TestHashDatabase(t *testing.T) {
	h := MustHashFromString(testHashHex)

	value, err := h.Value()
	if err != nil {
		t.Fatal(err)
	}
	var scanned Hash
	if err = scanned.Scan(value); err != nil {
		t.Fatal(err)
	}
	if scanned != h {
		t.Fatal("round trip altered the hash")
	}

	value, err = ZeroHash.Value()
	if err != nil {
		t.Fatal(err)
	}
	if value != nil {
		t.Fatal("zero hash produced a non-nil value")
	}

	if err = scanned.Scan([]byte{1, 2, 3}); err == nil {
		t.Fatal("wrong size accepted")
	}
	if err = scanned.Scan("string"); err == nil {
		t.Fatal("wrong type accepted")
	}
}

func TestBytesJSON(t *testing.T) {
	b := Bytes{0xde, 0xad, 0xbe, 0xef}

	buf, err := utils.MarshalJSON(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "\"deadbeef\"" {
		t.Fatalf("unexpected encoding %s", buf)
	}

	var back Bytes
	if err = utils.UnmarshalJSON(buf, &back); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, b) {
		t.Fatal("round trip altered the bytes")
	}

	if err = back.UnmarshalJSON([]byte("\"abc\"")); err == nil {
		t.Fatal("odd length accepted")
	}
	if err = back.UnmarshalJSON([]byte("deadbeef")); err == nil {
		t.Fatal("unquoted input accepted")
	}
}
