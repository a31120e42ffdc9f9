package wavio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	bytesPerSample16 = 2
	bytesPerSample24 = 3
	bytesPerSample32 = 4
	bitsPerByte      = 8

	maxInt16 = 32767
	maxInt24 = 8388607
	maxInt32 = 2147483647

	// WAV format constants
	wavHeaderSize      = 44 // Total WAV header size in bytes
	wavRiffHeaderSize  = 36 // RIFF header size (file size - 8 = riffHeaderSize + dataSize)
	wavPCMSubchunkSize = 16 // fmt subchunk size for PCM format
	wavFileSizeOffset  = 4  // Byte offset for file size field in header
	wavDataSizeOffset  = 40 // Byte offset for data size field in header
	wavFormatPCM       = 1

	bitShift8  = 8
	bitShift16 = 16

	wavWriterBufferSize = 256 * 1024
	uint32Size          = 4
)

// SupportedBitDepth reports whether Writer can encode the bit depth.
func SupportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return true
	default:
		return false
	}
}

// MaxValue returns the largest positive sample value for the bit depth.
func MaxValue(bitDepth int) int {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// Clip limits v to the signed range of the bit depth.
func Clip(v, bitDepth int) int {
	maxVal := MaxValue(bitDepth)
	switch {
	case v > maxVal:
		return maxVal
	case v < -maxVal-1:
		return -maxVal - 1
	default:
		return v
	}
}

// Writer writes PCM data directly without per-sample allocations.
// Header sizes are patched on Close, so the destination must be seekable.
type Writer struct {
	w          *bufio.Writer
	ws         io.WriteSeeker
	sampleRate int
	bitDepth   int
	channels   int
	dataSize   uint32
	byteBuf    []byte
}

// NewWriter writes a WAV header with placeholder sizes and returns a writer
// positioned at the start of the data chunk.
func NewWriter(ws io.WriteSeeker, sampleRate, bitDepth, channels int) (*Writer, error) {
	if !SupportedBitDepth(bitDepth) {
		return nil, fmt.Errorf("unsupported output bit depth %d", bitDepth)
	}
	if sampleRate <= 0 || channels < 1 {
		return nil, fmt.Errorf("invalid output format: %d Hz, %d channels", sampleRate, channels)
	}

	w := &Writer{
		w:          bufio.NewWriterSize(ws, wavWriterBufferSize),
		ws:         ws,
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
		channels:   channels,
	}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeHeader() error {
	blockAlign := w.channels * (w.bitDepth / bitsPerByte)
	byteRate := w.sampleRate * blockAlign

	header := make([]byte, wavHeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(w.bitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0)

	_, err := w.w.Write(header)
	return err
}

// WriteSamples encodes interleaved samples at the writer's bit depth.
// Values outside the bit depth's range are clipped.
func (w *Writer) WriteSamples(samples []int) error {
	size := w.bitDepth / bitsPerByte
	needed := len(samples) * size
	if len(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}
	buf := w.byteBuf[:needed]

	switch w.bitDepth {
	case bitsPerSample16:
		for i, s := range samples {
			binary.LittleEndian.PutUint16(buf[i*bytesPerSample16:], uint16(int16(Clip(s, w.bitDepth))))
		}
	case bitsPerSample24:
		for i, s := range samples {
			s = Clip(s, w.bitDepth)
			buf[i*bytesPerSample24] = byte(s)
			buf[i*bytesPerSample24+1] = byte(s >> bitShift8)
			buf[i*bytesPerSample24+2] = byte(s >> bitShift16)
		}
	case bitsPerSample32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(buf[i*bytesPerSample32:], uint32(int32(Clip(s, w.bitDepth))))
		}
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// Frames returns the number of whole frames written so far.
func (w *Writer) Frames() int {
	return int(w.dataSize) / (w.channels * (w.bitDepth / bitsPerByte))
}

// Close flushes the buffer and updates the WAV header with final sizes.
// It does not close the underlying destination.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}

	sizeBytes := make([]byte, uint32Size)

	if _, err := w.ws.Seek(wavFileSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, wavRiffHeaderSize+w.dataSize)
	if _, err := w.ws.Write(sizeBytes); err != nil {
		return err
	}

	if _, err := w.ws.Seek(wavDataSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	_, err := w.ws.Write(sizeBytes)
	return err
}

// WriteFile writes interleaved samples to a new WAV file at path.
func WriteFile(path string, samples []int, sampleRate, bitDepth, channels int) (err error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := outputFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	w, err := NewWriter(outputFile, sampleRate, bitDepth, channels)
	if err != nil {
		return err
	}
	if err := w.WriteSamples(samples); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}
