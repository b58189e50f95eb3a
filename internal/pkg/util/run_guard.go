package util

import "sync/atomic"

// RunGuard 非阻塞、不可重入的运行标记：已在运行时 TryAcquire 直接返回 false，不排队
type RunGuard struct {
	running atomic.Bool
}

func NewRunGuard() *RunGuard {
	return &RunGuard{}
}

func (g *RunGuard) TryAcquire() bool {
	return g.running.CompareAndSwap(false, true)
}

func (g *RunGuard) Release() {
	g.running.Store(false)
}

func (g *RunGuard) Running() bool {
	return g.running.Load()
}
