package model

import "testing"

func TestQueuePairsOldestFirst(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		if err := q.AddPlayer(id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	first, second := q.GetNextPair()
	if first != "a" || second != "b" {
		t.Fatalf("paired %s, %s", first, second)
	}
	if q.Size() != 1 {
		t.Fatalf("queue size = %d", q.Size())
	}
}

func TestQueueRejectsDuplicate(t *testing.T) {
	q := NewQueue()
	if err := q.AddPlayer("a"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := q.AddPlayer("a"); err == nil {
		t.Fatal("duplicate add accepted")
	}
}
