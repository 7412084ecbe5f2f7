package swarm

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"gridwalk/pkg/motion"
)

// Checksum hashes the wall table and every agent's position, heading, cell
// and face in storage order. Two runs from the same config and seed agree
// tick for tick.
func (w *World) Checksum() uint64 {
	d := xxhash.New()
	d.Write(w.walls.Bytes())
	var buf [20]byte
	w.EachAgent(func(a *motion.Agent, kind Role) {
		binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(a.Pos.X()))
		binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(a.Pos.Y()))
		binary.LittleEndian.PutUint16(buf[8:], uint16(a.Cell.X))
		binary.LittleEndian.PutUint16(buf[10:], uint16(a.Cell.Y))
		binary.LittleEndian.PutUint32(buf[12:], uint32(a.Face))
		buf[16] = byte(a.Dir)
		buf[17] = byte(a.Mode)
		buf[18] = byte(kind)
		buf[19] = 0
		d.Write(buf[:])
	})
	return d.Sum64()
}
