package light

import (
	"encoding/binary"
	"fmt"
	"net"
)

const (
	artNetPort       = 6454
	artNetHeaderSize = 18
	dmxMaxChannels   = 512
)

// ArtNet implements Strip by sending ArtDmx packets to a network LED node.
// All pixels go to one universe, so at most 170 RGB pixels are supported.
type ArtNet struct {
	buffer
	conn     *net.UDPConn
	universe int
	sequence uint8
}

// NewArtNet dials the Art-Net node. Port 0 selects the Art-Net port 6454.
func NewArtNet(host string, port, universe, pixels int, brightness float64) (*ArtNet, error) {
	if host == "" {
		return nil, fmt.Errorf("artnet strip: no host configured")
	}
	if pixels*3 > dmxMaxChannels {
		return nil, fmt.Errorf("artnet strip: %d pixels do not fit in one universe", pixels)
	}
	if universe < 0 || universe > 0x7fff {
		return nil, fmt.Errorf("artnet strip: invalid universe %d", universe)
	}
	if port == 0 {
		port = artNetPort
	}

	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, fmt.Sprint(port)))
	if err != nil {
		return nil, fmt.Errorf("resolve artnet node %s: %w", host, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial artnet node %s: %w", addr, err)
	}

	return &ArtNet{
		buffer:   newBuffer(pixels, brightness),
		conn:     conn,
		universe: universe,
	}, nil
}

// Show implements Strip.Show.
func (a *ArtNet) Show() error {
	// Sequence 0 disables reordering on the receiver, so it is skipped.
	a.sequence++
	if a.sequence == 0 {
		a.sequence = 1
	}
	packet := buildArtDmx(a.universe, a.sequence, a.rgb())
	if _, err := a.conn.Write(packet); err != nil {
		return fmt.Errorf("send artnet universe %d: %w", a.universe, err)
	}
	return nil
}

// Close implements Strip.Close.
func (a *ArtNet) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}

// buildArtDmx builds an ArtDmx packet. The data length is padded to an even
// number of channels, with a minimum of 2.
func buildArtDmx(universe int, sequence uint8, data []byte) []byte {
	length := len(data)
	if length%2 != 0 {
		length++
	}
	if length < 2 {
		length = 2
	}

	packet := make([]byte, artNetHeaderSize+length)
	copy(packet[0:8], []byte("Art-Net\x00"))
	binary.LittleEndian.PutUint16(packet[8:10], 0x5000) // OpDmx
	binary.BigEndian.PutUint16(packet[10:12], 14)       // protocol version
	packet[12] = sequence
	packet[13] = 0 // physical port
	binary.LittleEndian.PutUint16(packet[14:16], uint16(universe))
	binary.BigEndian.PutUint16(packet[16:18], uint16(length))
	copy(packet[artNetHeaderSize:], data)
	return packet
}
