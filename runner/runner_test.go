package runner

import (
	"errors"
	"strings"
	"testing"
	"time"

	"restsim/shared"
)

type actorFunc func() error

func (f actorFunc) Run() error { return f() }

func TestRunnerForwardsRecordsToSubscriber(t *testing.T) {
	r := New(10)
	sub := r.Subscribe()

	sink := r.Sink()
	for seq := 1; seq <= 3; seq++ {
		err := sink.Save(shared.Snapshot{Seq: seq, Author: "chef"})
		if err != nil {
			t.Errorf("Did not expect an error. Got %v", err)
		}
	}
	r.Stop()

	got := []Record{}
	for rec := range sub {
		got = append(got, rec)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 records. Got %v", len(got))
	}
	for i, rec := range got {
		sr, ok := rec.(StateRecord)
		if !ok {
			t.Fatalf("Expected a StateRecord. Got %T", rec)
		}
		if sr.State.Seq != i+1 {
			t.Errorf("Expected seq %v. Got %v", i+1, sr.State.Seq)
		}
		if sr.Actor() != "chef" {
			t.Errorf("Expected the record to carry the author. Got %v", sr.Actor())
		}
	}
}

func TestRunnerEmitsDoneRecords(t *testing.T) {
	r := New(10)
	sub := r.Subscribe()

	r.Go("chef", actorFunc(func() error { return nil }))
	if err := r.Wait(); err != nil {
		t.Errorf("Did not expect an error. Got %v", err)
	}
	r.Stop()

	rec, ok := <-sub
	if !ok {
		t.Fatalf("Expected a record before the stream closed")
	}
	dr, isDone := rec.(DoneRecord)
	if !isDone {
		t.Fatalf("Expected a DoneRecord. Got %T", rec)
	}
	if dr.Actor() != "chef" || dr.Err != nil {
		t.Errorf("Unexpected done record: %v", dr)
	}
	if _, open := <-sub; open {
		t.Errorf("Expected the subscription to close after Stop")
	}
}

func TestRunnerAggregatesActorErrors(t *testing.T) {
	r := New(10)

	errBoom := errors.New("boom")
	r.Go("chef", actorFunc(func() error { return errBoom }))
	r.Go("waiter", actorFunc(func() error { return nil }))
	r.Go("group0", actorFunc(func() error { return errBoom }))

	err := r.Wait()
	r.Stop()
	if err == nil {
		t.Fatalf("Expected an aggregate error")
	}
	if !strings.Contains(err.Error(), "2 actors failed") {
		t.Errorf("Expected both failures to be counted. Got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected the first error in the message. Got %v", err)
	}
}

func TestRunnerLateSubscriberMissesNothingBuffered(t *testing.T) {
	r := New(10)

	done := make(chan struct{})
	r.Go("chef", actorFunc(func() error {
		<-done
		return nil
	}))

	sub := r.Subscribe()
	close(done)
	if err := r.Wait(); err != nil {
		t.Errorf("Did not expect an error. Got %v", err)
	}
	r.Stop()

	select {
	case rec, ok := <-sub:
		if !ok {
			t.Fatalf("Expected the chef's done record")
		}
		if rec.Actor() != "chef" {
			t.Errorf("Unexpected record: %v", rec)
		}
	case <-time.After(time.Second):
		t.Fatalf("No record arrived on the subscription")
	}
}

func TestRecordStrings(t *testing.T) {
	sr := StateRecord{actor: "waiter", State: shared.Snapshot{Seq: 7}}
	if got := sr.String(); !strings.Contains(got, "7") || !strings.Contains(got, "waiter") {
		t.Errorf("Unexpected state record string: %v", got)
	}

	dr := DoneRecord{actor: "group0", Err: errors.New("boom")}
	if got := dr.String(); !strings.Contains(got, "group0") || !strings.Contains(got, "boom") {
		t.Errorf("Unexpected done record string: %v", got)
	}
}
