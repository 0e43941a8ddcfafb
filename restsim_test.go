package restsim

import (
	"bytes"
	"testing"
	"time"

	"restsim/runner"
	"restsim/statelog"
)

func fastOptions(groups, tables int) []Option {
	return []Option{
		WithGroups(groups),
		WithTables(tables),
		WithStartTimes(make([]time.Duration, groups)...),
		WithEatTimes(make([]time.Duration, groups)...),
		WithJitter(0, 0),
		WithCookTime(0, 0),
		WithSeed(1),
	}
}

func TestPrepareRejectsBadConfigurations(t *testing.T) {
	cases := map[string][]Option{
		"no groups":             {WithGroups(0)},
		"no tables":             {WithTables(0)},
		"start time mismatch":   {WithGroups(3), WithStartTimes(time.Millisecond)},
		"eat time mismatch":     {WithGroups(2), WithEatTimes(time.Millisecond, time.Millisecond, time.Millisecond)},
		"negative cooking time": {WithCookTime(-time.Millisecond, 0)},
	}
	for name, opts := range cases {
		if _, err := Prepare(opts...); err == nil {
			t.Errorf("Expected an error for configuration %q", name)
		}
	}
}

func TestPrepareDefaults(t *testing.T) {
	s, err := Prepare()
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}
	if s.cfg.Groups != 3 || s.cfg.Tables != 2 {
		t.Errorf("Unexpected default sizes: %v groups, %v tables", s.cfg.Groups, s.cfg.Tables)
	}
	if len(s.cfg.StartTime) != 3 || len(s.cfg.EatTime) != 3 {
		t.Errorf("Expected per-group delay defaults to be filled in")
	}
}

func TestRunSatisfiesDefaultPredicates(t *testing.T) {
	s, err := Prepare(fastOptions(3, 2)...)
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}

	resp, err := s.Run()
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}
	if ok, desc := resp.Response(); !ok {
		t.Errorf("Protocol property broken:\n%v", desc)
	}
}

func TestRunRecordStream(t *testing.T) {
	groups := 2
	s, err := Prepare(fastOptions(groups, 1)...)
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}

	run, err := s.Start()
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}
	sub := run.Subscribe()

	collected := make(chan []runner.Record)
	go func() {
		recs := []runner.Record{}
		for rec := range sub {
			recs = append(recs, rec)
		}
		collected <- recs
	}()

	if err := run.Wait(); err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}
	recs := <-collected

	states, dones := 0, 0
	for _, rec := range recs {
		switch rec.(type) {
		case runner.StateRecord:
			states++
		case runner.DoneRecord:
			dones++
		}
	}
	if want := len(run.Snapshots()); states != want {
		t.Errorf("Expected %v state records. Got %v", want, states)
	}
	if want := groups + 3; dones != want {
		t.Errorf("Expected %v done records. Got %v", want, dones)
	}
}

func TestRunLogSink(t *testing.T) {
	var buf bytes.Buffer
	opts := append(fastOptions(2, 2), WithSink(statelog.NewMsgpackSink(&buf)))
	s, err := Prepare(opts...)
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}

	run, err := s.Start()
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}
	if err := run.Wait(); err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}

	decoded, err := statelog.ReadLog(&buf)
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}
	snaps := run.Snapshots()
	if len(decoded) != len(snaps) {
		t.Fatalf("Expected %v logged snapshots. Got %v", len(snaps), len(decoded))
	}
	for i := range snaps {
		if decoded[i].Seq != snaps[i].Seq || decoded[i].Author != snaps[i].Author {
			t.Errorf("Logged snapshot %v differs: %+v", i, decoded[i])
		}
	}
}

func TestAbortUnblocksStalledRun(t *testing.T) {
	// A single table keeps the second group queued at reception while the
	// first one eats; aborting must fail it out of that wait.
	s, err := Prepare(
		WithGroups(2),
		WithTables(1),
		WithStartTimes(0, 0),
		WithEatTimes(300*time.Millisecond, 300*time.Millisecond),
		WithJitter(0, 0),
		WithCookTime(0, 0),
		WithSeed(1),
	)
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}

	run, err := s.Start()
	if err != nil {
		t.Fatalf("Did not expect an error. Got %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	run.Abort()

	done := make(chan error)
	go func() { done <- run.Wait() }()
	select {
	case err := <-done:
		if err == nil {
			t.Errorf("Expected the aborted actors to report errors")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run still blocked after Abort")
	}
}
