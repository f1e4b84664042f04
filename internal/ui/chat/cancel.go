// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
)

// =============================================================================
// REQUEST CONTEXT MANAGEMENT (THREAD-SAFE)
// =============================================================================

// cancelManager owns the context shared by every in-flight backend request.
// Quitting cancels it so pending requests and the change listener stop.
// It must be held by pointer so Bubble Tea model copies share it.
type cancelManager struct {
	mu         sync.Mutex
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// newCancelManager creates a cancelManager derived from parent.
func newCancelManager(parent context.Context) *cancelManager {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &cancelManager{ctx: ctx, cancelFunc: cancel}
}

// context returns the shared request context.
func (cm *cancelManager) context() context.Context {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.ctx
}

// cancel cancels the shared context. Safe to call multiple times.
func (cm *cancelManager) cancel() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc != nil {
		cm.cancelFunc()
		cm.cancelFunc = nil
	}
}
