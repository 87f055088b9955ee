// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shell

import (
	"context"

	"github.com/stretchr/testify/mock"
)

var _ Runner = (*MockRunner)(nil)

// MockRunner is a [Runner] for tests. Expectations are matched against the
// complete [Command].
type MockRunner struct {
	mock.Mock
}

// Run implements [Runner].
func (m *MockRunner) Run(_ context.Context, cmd Command) error {
	return m.Called(cmd).Error(0)
}

// Output implements [Runner].
func (m *MockRunner) Output(_ context.Context, cmd Command) (string, error) {
	args := m.Called(cmd)
	return args.String(0), args.Error(1)
}
