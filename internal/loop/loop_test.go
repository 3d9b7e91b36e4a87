package loop

import (
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Queue", func() {
	var q *Queue

	BeforeEach(func() {
		q = NewQueue()
	})

	It("runs callbacks in request order", func() {
		var order []int
		q.RequestFrame(func() { order = append(order, 1) })
		q.RequestFrame(func() { order = append(order, 2) })
		q.RequestFrame(func() { order = append(order, 3) })

		Expect(q.Flush()).To(Equal(3))
		Expect(order).To(Equal([]int{1, 2, 3}))
		Expect(q.Len()).To(BeZero())
	})

	It("defers callbacks requested during a flush", func() {
		runs := 0
		var again func()
		again = func() {
			runs++
			q.RequestFrame(again)
		}
		q.RequestFrame(again)

		q.Flush()
		Expect(runs).To(Equal(1))
		Expect(q.Len()).To(Equal(1))

		q.Flush()
		Expect(runs).To(Equal(2))
	})

	It("skips canceled callbacks", func() {
		ran := false
		cancel := q.RequestFrame(func() { ran = true })
		cancel()

		Expect(q.Flush()).To(BeZero())
		Expect(ran).To(BeFalse())
	})
})

var _ = Describe("Loop", func() {
	var (
		q      *Queue
		l      *Loop
		frames int
	)

	BeforeEach(func() {
		q = NewQueue()
		frames = 0
		l = New(q, func() { frames++ })
	})

	It("does nothing until started", func() {
		q.Flush()
		Expect(frames).To(BeZero())
		Expect(l.Running()).To(BeFalse())
	})

	It("reschedules itself after every frame", func() {
		l.Start()
		for i := 0; i < 5; i++ {
			q.Flush()
		}
		Expect(frames).To(Equal(5))
		Expect(l.Frames()).To(Equal(uint64(5)))
		Expect(q.Len()).To(Equal(1))
	})

	It("ignores a second Start", func() {
		l.Start()
		l.Start()
		Expect(q.Len()).To(Equal(1))
		q.Flush()
		Expect(frames).To(Equal(1))
	})

	It("stops rescheduling after Stop", func() {
		l.Start()
		q.Flush()
		l.Stop()

		Expect(l.Running()).To(BeFalse())
		Expect(q.Flush()).To(BeZero())
		Expect(frames).To(Equal(1))
		Expect(q.Len()).To(BeZero())
	})

	It("can stop from inside a frame", func() {
		l = New(q, func() {
			frames++
			l.Stop()
		})
		l.Start()
		q.Flush()
		q.Flush()
		Expect(frames).To(Equal(1))
		Expect(q.Len()).To(BeZero())
	})

	It("restarts with a single chain", func() {
		l.Start()
		l.Stop()
		l.Start()
		q.Flush()
		Expect(frames).To(Equal(1))
		Expect(q.Len()).To(Equal(1))
	})
})

var _ = Describe("Ticker", func() {
	It("drives a loop until closed", func() {
		t := NewTicker(200)
		var n atomic.Int64
		l := New(t, func() { n.Add(1) })
		l.Start()

		Eventually(n.Load, time.Second).Should(BeNumerically(">=", 3))

		l.Stop()
		t.Close()
		t.Close()
		stopped := n.Load()
		Consistently(n.Load, 50*time.Millisecond).Should(BeNumerically("<=", stopped+1))
	})
})
