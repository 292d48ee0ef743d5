package speech

import (
	"bytes"
	"encoding/binary"
)

// The TTS model returns raw PCM frames: 24kHz sample rate, 16-bit
// little-endian samples, one channel.
const (
	wavSampleRate = 24000
	wavBitDepth   = 16
	wavChannels   = 1
)

// wrapWAV prefixes raw PCM with a canonical 44-byte RIFF/WAVE header.
func wrapWAV(pcm []byte) []byte {
	byteRate := wavSampleRate * wavChannels * wavBitDepth / 8
	blockAlign := wavChannels * wavBitDepth / 8

	var buf bytes.Buffer
	buf.Grow(44 + len(pcm))
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(wavChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(wavSampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(wavBitDepth))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
