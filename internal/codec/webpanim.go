package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// defaultFrameDelayMS is used for frames whose source delay is zero, matching
// how browsers play such GIFs.
const defaultFrameDelayMS = 100

// maxUint24 bounds the 24-bit fields of the animation chunks.
const maxUint24 = 1<<24 - 1

// encodeAnimatedWebP encodes every frame as a still WebP and muxes the
// bitstreams into one extended-format animated file.
func encodeAnimatedWebP(s *Surface, options *encoder.Options) ([]byte, error) {
	stills := make([][]byte, len(s.Frames))
	for i, frame := range s.Frames {
		var buf bytes.Buffer
		if err := webp.Encode(&buf, frame, options); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		stills[i] = buf.Bytes()
	}

	delays := make([]int, len(s.Frames))
	for i := range delays {
		if i < len(s.Delays) && s.Delays[i] > 0 {
			delays[i] = s.Delays[i] * 10
		} else {
			delays[i] = defaultFrameDelayMS
		}
	}

	return muxAnimatedWebP(stills, delays, s.Width(), s.Height())
}

type riffChunk struct {
	fourCC  string
	payload []byte
}

// muxAnimatedWebP wraps still WebP files as ANMF frames of a VP8X canvas of
// width×height. Delays are in milliseconds. Frames cover the full canvas and
// replace, not blend with, the previous one.
func muxAnimatedWebP(stills [][]byte, delays []int, width, height int) ([]byte, error) {
	if len(stills) == 0 {
		return nil, fmt.Errorf("webp mux: no frames")
	}
	if width <= 0 || height <= 0 || width > maxUint24+1 || height > maxUint24+1 {
		return nil, fmt.Errorf("webp mux: invalid canvas %dx%d", width, height)
	}

	var alpha bool
	var frames bytes.Buffer

	for i, still := range stills {
		chunks, err := parseWebPChunks(still)
		if err != nil {
			return nil, fmt.Errorf("webp mux: frame %d: %w", i, err)
		}

		var data bytes.Buffer
		for _, c := range chunks {
			switch c.fourCC {
			case "ALPH", "VP8L":
				alpha = true
				writeChunk(&data, c)
			case "VP8 ":
				writeChunk(&data, c)
			}
		}
		if data.Len() == 0 {
			return nil, fmt.Errorf("webp mux: frame %d has no bitstream", i)
		}

		header := make([]byte, 16)
		putUint24(header[6:], uint32(width-1))
		putUint24(header[9:], uint32(height-1))
		putUint24(header[12:], uint32(min(max(delays[i], 0), maxUint24)))
		// Bit 1 set: do not blend. Bit 0 clear: no disposal.
		header[15] = 0x02

		writeChunk(&frames, riffChunk{fourCC: "ANMF", payload: append(header, data.Bytes()...)})
	}

	vp8x := make([]byte, 10)
	vp8x[0] = 0x02
	if alpha {
		vp8x[0] |= 0x10
	}
	putUint24(vp8x[4:], uint32(width-1))
	putUint24(vp8x[7:], uint32(height-1))

	// Transparent background, infinite loop.
	anim := make([]byte, 6)

	var body bytes.Buffer
	body.WriteString("WEBP")
	writeChunk(&body, riffChunk{fourCC: "VP8X", payload: vp8x})
	writeChunk(&body, riffChunk{fourCC: "ANIM", payload: anim})
	body.Write(frames.Bytes())

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

func parseWebPChunks(data []byte) ([]riffChunk, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return nil, fmt.Errorf("not a webp file")
	}

	var chunks []riffChunk
	rest := data[12:]
	for len(rest) > 0 {
		if len(rest) < 8 {
			return nil, fmt.Errorf("truncated chunk header")
		}
		size := int(binary.LittleEndian.Uint32(rest[4:8]))
		if size > len(rest)-8 {
			return nil, fmt.Errorf("chunk %q overruns file", rest[0:4])
		}
		chunks = append(chunks, riffChunk{fourCC: string(rest[0:4]), payload: rest[8 : 8+size]})

		next := 8 + size + size&1
		if next > len(rest) {
			break
		}
		rest = rest[next:]
	}
	return chunks, nil
}

func writeChunk(buf *bytes.Buffer, c riffChunk) {
	buf.WriteString(c.fourCC)
	binary.Write(buf, binary.LittleEndian, uint32(len(c.payload)))
	buf.Write(c.payload)
	if len(c.payload)&1 == 1 {
		buf.WriteByte(0)
	}
}

func putUint24(b []byte, v uint32) {
	b[0], b[1], b[2] = byte(v), byte(v>>8), byte(v>>16)
}
