// File: internal/worker/worker.go
package worker

import "sync"

// Job 是交由池執行的工作單元
type Job func()

// Pool 是固定大小的背景工作池，生命週期由擁有者控制
type Pool interface {
	Submit(Job)
	Stop()
}

// NewPool 建立 n 個 worker 的池，n <= 0 視為 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Job, n)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

type pool struct {
	jobs chan Job
	wg   sync.WaitGroup
}

func (p *pool) work() {
	defer p.wg.Done()
	for job := range p.jobs {
		if job != nil {
			job()
		}
	}
}

// Submit 將工作排入佇列，佇列已滿時阻塞
func (p *pool) Submit(j Job) {
	p.jobs <- j
}

// Stop 關閉佇列並等待所有已提交的工作完成
func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
