package session

import (
	"encoding/json"
	"fmt"

	"github.com/devmobasa/wayscriber/internal/board"
	"github.com/devmobasa/wayscriber/internal/draw"
)

// snapshotV1 is the first on-disk format: only the three canonical
// boards, keyed by mode name, with the tool fields inline.
type snapshotV1 struct {
	Version     int          `json:"version"`
	ActiveMode  string       `json:"active_mode"`
	Transparent *pagesV1     `json:"transparent,omitempty"`
	Whiteboard  *pagesV1     `json:"whiteboard,omitempty"`
	Blackboard  *pagesV1     `json:"blackboard,omitempty"`
	Tool        ToolSnapshot `json:"tool"`
}

type pagesV1 struct {
	Pages  []*draw.Frame `json:"pages"`
	Active int           `json:"active"`
}

// decodeSnapshot parses session bytes at any supported version and
// returns the current form.
func decodeSnapshot(data []byte) (*Snapshot, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch probe.Version {
	case CurrentVersion:
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, err
		}
		return &snap, nil
	case 1:
		var old snapshotV1
		if err := json.Unmarshal(data, &old); err != nil {
			return nil, err
		}
		return upgradeV1(&old), nil
	default:
		return nil, fmt.Errorf("unsupported session version %d", probe.Version)
	}
}

// upgradeV1 maps the fixed v1 boards onto the canonical specs.
func upgradeV1(old *snapshotV1) *Snapshot {
	snap := &Snapshot{
		Version: CurrentVersion,
		Tool:    old.Tool,
	}
	add := func(spec board.Spec, p *pagesV1) {
		if p == nil {
			return
		}
		snap.Boards = append(snap.Boards, BoardSnapshot{
			Spec:       spec,
			Pages:      p.Pages,
			ActivePage: p.Active,
		})
	}
	add(board.TransparentSpec(), old.Transparent)
	add(board.WhiteboardSpec(), old.Whiteboard)
	add(board.BlackboardSpec(), old.Blackboard)

	switch old.ActiveMode {
	case "whiteboard":
		snap.ActiveBoard = board.WhiteboardSpec().ID
	case "blackboard":
		snap.ActiveBoard = board.BlackboardSpec().ID
	default:
		snap.ActiveBoard = board.TransparentSpec().ID
	}
	return snap
}
