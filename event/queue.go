package event

import (
	"sync/atomic"

	"github.com/lixenwraith/vi-stacker/constant"
)

// EventQueue is a lock-free MPSC ring buffer for triggers
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK (input goroutine, tests, autoplay)
//   - Consume: Single consumer (game loop), drained once per frame
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type EventQueue struct {
	events    [constant.EventQueueSize]GameEvent
	published [constant.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                        // Read index
	tail      atomic.Uint64                        // Write index
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds event using lock-free CAS with published flags pattern
func (eq *EventQueue) Push(ev GameEvent) {
	for {
		currentTail := eq.tail.Load()
		nextTail := currentTail + 1

		if eq.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & constant.EventBufferMask

			eq.events[idx] = ev
			eq.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := eq.head.Load()
			if nextTail-currentHead > constant.EventQueueSize {
				eq.head.CompareAndSwap(currentHead, nextTail-constant.EventQueueSize)
			}
			return
		}
	}
}

// Emit pushes a bare trigger
func (eq *EventQueue) Emit(et EventType) {
	eq.Push(GameEvent{Type: et})
}

// Consume returns all pending events in FIFO order and advances head
func (eq *EventQueue) Consume() []GameEvent {
	for {
		currentHead := eq.head.Load()
		currentTail := eq.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		available := currentTail - currentHead
		if available > constant.EventQueueSize {
			available = constant.EventQueueSize
			currentHead = currentTail - constant.EventQueueSize
		}

		result := make([]GameEvent, 0, available)
		for i := uint64(0); i < available; i++ {
			idx := (currentHead + i) & constant.EventBufferMask
			if !eq.published[idx].Load() {
				break // Writer incomplete
			}
			result = append(result, eq.events[idx])
		}

		newHead := currentHead + uint64(len(result))
		if eq.head.CompareAndSwap(currentHead, newHead) {
			for i := uint64(0); i < uint64(len(result)); i++ {
				eq.published[(currentHead+i)&constant.EventBufferMask].Store(false)
			}
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns approximate pending event count
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > constant.EventQueueSize {
		return constant.EventQueueSize
	}
	return diff
}
