package shared

import (
	"testing"
)

type collectSink struct {
	saved []Snapshot
}

func (c *collectSink) Save(s Snapshot) error {
	c.saved = append(c.saved, s)
	return nil
}

func testConfig(groups, tables int) Config {
	return Config{Groups: groups, Tables: tables}
}

func TestNewStateInitialValues(t *testing.T) {
	st := NewState(testConfig(2, 1), nil)

	if st.ChefStat != ChefAwaitingOrder {
		t.Errorf("Expected chef to start awaiting an order. Got %v", st.ChefStat)
	}
	for g, gs := range st.GroupStat {
		if gs != GroupArriving {
			t.Errorf("Expected group %d to start arriving. Got %v", g, gs)
		}
	}
	for g, tb := range st.AssignedTable {
		if tb != NoTable {
			t.Errorf("Expected group %d to start without a table. Got %v", g, tb)
		}
	}
}

func TestPersistStampsSequenceAndAuthor(t *testing.T) {
	sink := &collectSink{}
	st := NewState(testConfig(1, 1), sink)

	st.GroupStat[0] = GroupAtReception
	if err := st.Persist("group0"); err != nil {
		t.Errorf("Did not expect an error. Got %v", err)
	}
	st.ChefStat = ChefCooking
	if err := st.Persist("chef"); err != nil {
		t.Errorf("Did not expect an error. Got %v", err)
	}

	if len(sink.saved) != 2 {
		t.Fatalf("Expected 2 snapshots. Got %v", len(sink.saved))
	}
	if sink.saved[0].Seq != 1 || sink.saved[1].Seq != 2 {
		t.Errorf("Expected sequence numbers 1, 2. Got %v, %v", sink.saved[0].Seq, sink.saved[1].Seq)
	}
	if sink.saved[0].Author != "group0" || sink.saved[1].Author != "chef" {
		t.Errorf("Unexpected authors: %v, %v", sink.saved[0].Author, sink.saved[1].Author)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	st := NewState(testConfig(2, 1), nil)
	snap := st.Snapshot("test")

	st.GroupStat[0] = GroupEating
	st.AssignedTable[1] = 0

	if snap.Groups[0] != GroupArriving {
		t.Errorf("Snapshot shares group statuses with the live state")
	}
	if snap.AssignedTable[1] != NoTable {
		t.Errorf("Snapshot shares table assignments with the live state")
	}
}
