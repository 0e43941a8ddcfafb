package statelog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"restsim/shared"

	"github.com/vmihailenco/msgpack/v5"
)

// A MsgpackSink appends snapshots to a writer as length-prefixed msgpack
// frames: a 4-byte big-endian length followed by the encoded snapshot.
// The resulting log can be replayed with ReadLog and fed to the checking
// package after the run.
type MsgpackSink struct {
	w io.Writer
}

func NewMsgpackSink(w io.Writer) *MsgpackSink {
	return &MsgpackSink{w: w}
}

func (ms *MsgpackSink) Save(s shared.Snapshot) error {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("statelog: encoding snapshot %d: %w", s.Seq, err)
	}
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	if _, err := ms.w.Write(length[:]); err != nil {
		return fmt.Errorf("statelog: writing snapshot %d: %w", s.Seq, err)
	}
	if _, err := ms.w.Write(data); err != nil {
		return fmt.Errorf("statelog: writing snapshot %d: %w", s.Seq, err)
	}
	return nil
}

// ReadLog decodes an entire msgpack run log, returning the snapshots in
// persistence order.
func ReadLog(r io.Reader) ([]shared.Snapshot, error) {
	run := []shared.Snapshot{}
	var length [4]byte
	for {
		_, err := io.ReadFull(r, length[:])
		if errors.Is(err, io.EOF) {
			return run, nil
		}
		if err != nil {
			return nil, fmt.Errorf("statelog: reading frame length: %w", err)
		}
		data := make([]byte, binary.BigEndian.Uint32(length[:]))
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("statelog: reading frame: %w", err)
		}
		var s shared.Snapshot
		if err := msgpack.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("statelog: decoding snapshot %d: %w", len(run), err)
		}
		run = append(run, s)
	}
}
