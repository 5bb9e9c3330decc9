package parallel

import (
	"sync/atomic"
	"testing"
)

func TestExecuteRunsEveryTaskExactlyOnce(t *testing.T) {
	const n = 200
	var counter int32
	tasks := make([]Task, n)
	for i := range tasks {
		tasks[i] = func() { atomic.AddInt32(&counter, 1) }
	}

	Execute(tasks, 8)

	if counter != n {
		t.Errorf("expected %d task executions, got %d", n, counter)
	}
}

func TestExecuteSurvivesPanickingTask(t *testing.T) {
	var ran int32
	tasks := []Task{
		func() { panic("boom") },
		func() { atomic.AddInt32(&ran, 1) },
		func() { atomic.AddInt32(&ran, 1) },
	}

	Execute(tasks, 4)

	if ran != 2 {
		t.Errorf("expected the 2 non-panicking tasks to still run, got %d", ran)
	}
}

func TestExecuteEmptyTaskList(t *testing.T) {
	Execute(nil, 4)
}

func TestExecuteClampsZeroWorkers(t *testing.T) {
	var ran int32
	Execute([]Task{func() { atomic.AddInt32(&ran, 1) }}, 0)
	if ran != 1 {
		t.Errorf("expected the single task to run even with workerCount=0, got %d", ran)
	}
}
