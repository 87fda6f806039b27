package backend

import (
	"encoding/binary"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
)

// WindowSize and ScoutSize are the hybrid selector's sampling parameters
// from spec §4.6: data is chopped into 64KiB windows, and each window's
// back-end choice is scouted from just its first 4KiB to keep selection
// overhead low on large payloads.
const (
	WindowSize = 64 * 1024
	ScoutSize  = 4 * 1024
)

// CoalesceThreshold is the fraction of windows that must agree on a
// back-end before the selector coalesces to a single whole-payload
// ("solid") encoding instead of a per-window ("windowed") one.
const CoalesceThreshold = 0.9

// hybridMagic tags the windowed envelope. Solid output (no magic) is a
// single backend tag byte followed by one compressed block: EncodeHybrid
// emits it when the coalesced solid encoding wins, and it is also the
// legacy format produced before windowing existed.
var hybridMagic = [4]byte{'H', 'Y', 'B', '1'}

var candidateTags = []format.BackendTag{format.BackendDense, format.BackendFast, format.BackendOptional}

// EncodeHybrid compresses data using the windowed scout-and-coalesce
// selector: each window's candidate back-ends are scored on a sample, the
// per-window winners are coalesced into one solid back-end when
// CoalesceThreshold of them agree, and the smaller of the solid and
// per-window encodings is kept.
func EncodeHybrid(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return append(hybridMagic[:], 0, 0, 0, 0), nil
	}

	windows := splitWindows(data, WindowSize)

	choices := make([]format.BackendTag, len(windows))
	for i, w := range windows {
		choices[i] = scoutBest(w)
	}

	solidTag, coalesced := coalesce(choices)

	windowedOut, windowedErr := encodeWindowed(windows, choices)

	if coalesced {
		solidOut, err := encodeSolid(data, solidTag)
		if err != nil {
			return nil, err
		}

		if windowedErr != nil || len(solidOut) <= len(windowedOut) {
			return solidOut, nil
		}
	}

	if windowedErr != nil {
		return nil, windowedErr
	}

	return windowedOut, nil
}

// DecodeHybrid inverts EncodeHybrid, dispatching on the envelope's magic.
func DecodeHybrid(data []byte) ([]byte, error) {
	if len(data) >= 4 && data[0] == hybridMagic[0] && data[1] == hybridMagic[1] &&
		data[2] == hybridMagic[2] && data[3] == hybridMagic[3] {
		return decodeWindowed(data[4:])
	}

	return decodeSolid(data)
}

func splitWindows(data []byte, size int) [][]byte {
	var windows [][]byte

	for off := 0; off < len(data); off += size {
		end := off + size
		if end > len(data) {
			end = len(data)
		}

		windows = append(windows, data[off:end])
	}

	return windows
}

// scoutBest compresses a sample of window (its first ScoutSize bytes, or
// all of it if smaller) with every candidate back-end and returns whichever
// produced the smallest sample output.
func scoutBest(window []byte) format.BackendTag {
	sample := window
	if len(sample) > ScoutSize {
		sample = sample[:ScoutSize]
	}

	best := format.BackendFast
	bestSize := -1

	for _, tag := range candidateTags {
		codec, err := GetCodec(tag)
		if err != nil {
			continue
		}

		out, err := codec.Compress(sample)
		if err != nil {
			continue
		}

		if bestSize < 0 || len(out) < bestSize {
			bestSize = len(out)
			best = tag
		}
	}

	return best
}

// coalesce reports the majority back-end and whether it clears
// CoalesceThreshold of all window choices.
func coalesce(choices []format.BackendTag) (format.BackendTag, bool) {
	if len(choices) == 0 {
		return format.BackendFast, false
	}

	counts := make(map[format.BackendTag]int)
	for _, c := range choices {
		counts[c]++
	}

	var best format.BackendTag

	bestCount := 0

	for tag, n := range counts {
		if n > bestCount {
			best = tag
			bestCount = n
		}
	}

	return best, float64(bestCount)/float64(len(choices)) >= CoalesceThreshold
}

func encodeSolid(data []byte, tag format.BackendTag) ([]byte, error) {
	codec, err := GetCodec(tag)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, errs.Wrap(errs.ErrBackendFailed, "backend: solid compress with %s: %v", tag, err)
	}

	out := make([]byte, 0, len(compressed)+1)
	out = append(out, byte(tag))
	out = append(out, compressed...)

	return out, nil
}

func decodeSolid(data []byte) ([]byte, error) {
	if len(data) < 1 {
		return nil, errs.Wrap(errs.ErrBackendFailed, "backend: truncated solid envelope")
	}

	codec, err := GetCodec(format.BackendTag(data[0]))
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data[1:])
	if err != nil {
		return nil, errs.Wrap(errs.ErrBackendFailed, "backend: solid decompress: %v", err)
	}

	return out, nil
}

func encodeWindowed(windows [][]byte, choices []format.BackendTag) ([]byte, error) {
	type compressedWindow struct {
		tag     format.BackendTag
		origLen int
		data    []byte
	}

	compressed := make([]compressedWindow, len(windows))

	for i, w := range windows {
		codec, err := GetCodec(choices[i])
		if err != nil {
			return nil, err
		}

		out, err := codec.Compress(w)
		if err != nil {
			return nil, errs.Wrap(errs.ErrBackendFailed, "backend: windowed compress window %d: %v", i, err)
		}

		compressed[i] = compressedWindow{tag: choices[i], origLen: len(w), data: out}
	}

	out := append([]byte{}, hybridMagic[:]...)

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(windows)))
	out = append(out, countBuf[:]...)

	// Per-window header is codecTag:u8 || origSize:u32 || compSize:u32,
	// matching spec §4.6/§6.2's normative windowed envelope.
	for _, cw := range compressed {
		out = append(out, byte(cw.tag))

		var origBuf [4]byte
		binary.LittleEndian.PutUint32(origBuf[:], uint32(cw.origLen))
		out = append(out, origBuf[:]...)

		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(cw.data)))
		out = append(out, lenBuf[:]...)
		out = append(out, cw.data...)
	}

	return out, nil
}

func decodeWindowed(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errs.Wrap(errs.ErrBackendFailed, "backend: truncated windowed envelope")
	}

	count := int(binary.LittleEndian.Uint32(data[:4]))
	off := 4

	var out []byte

	for i := 0; i < count; i++ {
		if off+9 > len(data) {
			return nil, errs.Wrap(errs.ErrBackendFailed, "backend: truncated window %d header", i)
		}

		tag := format.BackendTag(data[off])
		origLength := int(binary.LittleEndian.Uint32(data[off+1 : off+5]))
		length := int(binary.LittleEndian.Uint32(data[off+5 : off+9]))
		off += 9

		if off+length > len(data) {
			return nil, errs.Wrap(errs.ErrBackendFailed, "backend: truncated window %d body", i)
		}

		codec, err := GetCodec(tag)
		if err != nil {
			return nil, err
		}

		decompressed, err := codec.Decompress(data[off : off+length])
		if err != nil {
			return nil, errs.Wrap(errs.ErrBackendFailed, "backend: window %d decompress: %v", i, err)
		}

		if len(decompressed) != origLength {
			return nil, errs.Wrap(errs.ErrBackendFailed, "backend: window %d decompressed to %d bytes, header says %d", i, len(decompressed), origLength)
		}

		out = append(out, decompressed...)
		off += length
	}

	return out, nil
}
