package service

import "sync"

// Dispatcher decouples event handling from the HTTP acknowledgment:
// the router acks immediately and the handler runs on a worker
// goroutine.
type Dispatcher struct {
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

// NewDispatcher starts a dispatcher with a bounded task queue.
func NewDispatcher(buffer int) *Dispatcher {
	d := &Dispatcher{tasks: make(chan func(), buffer)}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for task := range d.tasks {
		task()
	}
}

// Enqueue hands a task to the worker. A full queue drops the task
// rather than stalling the acknowledgment path.
func (d *Dispatcher) Enqueue(task func()) {
	select {
	case d.tasks <- task:
	default:
		logger.Warnf("[dispatch] queue full, dropping task")
	}
}

// Stop drains the queue and waits for the worker to finish.
func (d *Dispatcher) Stop() {
	d.once.Do(func() { close(d.tasks) })
	d.wg.Wait()
}
