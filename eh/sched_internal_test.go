package eh

import "testing"

func TestRingInsertAndRemove(t *testing.T) {
	a := &Task{Name: "a"}
	ringInitSingle(a)
	b := &Task{Name: "b"}
	ringInsertAfter(a, b)
	c := &Task{Name: "c"}
	ringInsertAfter(a, c)

	// ring is now a -> c -> b -> a
	if a.next != c || c.next != b || b.next != a {
		t.Fatalf("unexpected ring order after inserts: a.next=%v c.next=%v b.next=%v", a.next.Name, c.next.Name, b.next.Name)
	}

	ringRemove(c)
	if a.next != b || b.prev != a {
		t.Fatalf("ring not correctly spliced after removing c")
	}
	if c.next != c || c.prev != c {
		t.Fatalf("removed node should be a self-loop, got next=%v prev=%v", c.next.Name, c.prev.Name)
	}
}

func TestTaskListPushAndRemovePreservesFIFOOrder(t *testing.T) {
	var l taskList
	a, b, c := &Task{Name: "a"}, &Task{Name: "b"}, &Task{Name: "c"}
	l.pushTail(a)
	l.pushTail(b)
	l.pushTail(c)

	if l.head != a || l.tail != c {
		t.Fatalf("unexpected head/tail after pushes")
	}

	l.remove(b)
	if a.next != c || c.prev != a {
		t.Fatalf("removing middle element did not splice correctly")
	}

	l.remove(a)
	if l.head != c {
		t.Fatalf("removing head did not update l.head, got %v", l.head.Name)
	}

	l.remove(c)
	if l.head != nil || l.tail != nil {
		t.Fatalf("list should be empty after removing every element")
	}
}

func TestTaskListRemoveOfDetachedSelfLoopIsNoOp(t *testing.T) {
	var l taskList
	real := &Task{Name: "real"}
	l.pushTail(real)

	detached := &Task{Name: "detached"}
	ringInitSingle(detached)

	l.remove(detached) // must not corrupt l

	if l.head != real || l.tail != real {
		t.Fatalf("removing a detached node corrupted the list: head=%v tail=%v", l.head, l.tail)
	}
}
