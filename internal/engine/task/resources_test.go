package task

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestResources_Release(t *testing.T) {
	ctrl := gomock.NewController(t)
	proc := mocks.NewMockProcess(ctrl)
	outR := mocks.NewMockReadEnd(ctrl)
	inW := mocks.NewMockWriteEnd(ctrl)

	var r resources
	assert.False(t, r.holding())

	r.process.set(proc)
	r.stdoutRead.set(outR)
	r.stdinWrite.set(inW)
	r.buf = make([]byte, 8)
	assert.True(t, r.holding())

	closeErr := errors.New("close failed")
	gomock.InOrder(
		proc.EXPECT().Close().Return(nil),
		outR.EXPECT().Close().Return(closeErr),
	)
	inW.EXPECT().Close().Return(nil)

	require.ErrorIs(t, r.release(), closeErr)
	assert.False(t, r.holding())

	require.NoError(t, r.release(), "second release closes nothing")
}

func TestTask_FailedLaunchHoldsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	host := mocks.NewMockProcessHost(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any())

	outR := mocks.NewMockReadEnd(ctrl)
	outW := mocks.NewMockWriteEnd(ctrl)
	gomock.InOrder(
		host.EXPECT().CreatePipe().Return(outR, outW, nil),
		host.EXPECT().CreatePipe().Return(nil, nil, errors.New("too many open files")),
	)
	outR.EXPECT().Close().Return(nil)
	outW.EXPECT().Close().Return(nil)

	reg := NewRegistry(host, mocks.NewMockTicker(ctrl), logger)
	tk := reg.CreateTask("echo", "/bin/echo", "hello")

	assert.False(t, tk.Run())
	assert.True(t, tk.IsCompleted())
	assert.False(t, tk.res.holding())
}

func TestTask_SetStateRefusesLeavingCompleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		assert.Contains(t, msg, "completed -> running")
	})

	reg := NewRegistry(mocks.NewMockProcessHost(ctrl), mocks.NewMockTicker(ctrl), logger)
	tk := reg.CreateTask("echo", "/bin/echo", "")
	tk.state = domain.StateCompleted

	tk.setState(domain.StateRunning)
	assert.True(t, tk.IsCompleted())
}
