package arm

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.uber.org/multierr"

	"github.com/robomotive/sixdof/kinematics"
)

// SerialArm is an Arm whose joint commands go out over a serial motion
// controller. Pose math is delegated to the embedded model-only arm;
// every successful move is also mirrored there so pose queries track
// the commanded state.
type SerialArm struct {
	*Kinematics
	port   io.ReadWriteCloser
	events chan string
	logger golog.Logger

	cancel  context.CancelFunc
	workers sync.WaitGroup
}

// NewSerialArm opens the named port at 115200 8N1 and starts a
// background reader for controller responses.
func NewSerialArm(portName string, model *kinematics.Model, logger golog.Logger) (*SerialArm, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", portName)
	}
	return NewSerialArmWithPort(port, model, logger)
}

// NewSerialArmWithPort wraps an already open controller connection.
// Anything satisfying io.ReadWriteCloser works, which keeps the arm
// testable without hardware.
func NewSerialArmWithPort(port io.ReadWriteCloser, model *kinematics.Model, logger golog.Logger) (*SerialArm, error) {
	k, err := NewKinematics(model, logger)
	if err != nil {
		return nil, multierr.Combine(err, port.Close())
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &SerialArm{
		Kinematics: k,
		port:       port,
		events:     make(chan string, 16),
		logger:     logger,
		cancel:     cancel,
	}
	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		a.readLoop(ctx)
	}()
	return a, nil
}

// Events returns controller response lines. Lines arriving while the
// channel is full are dropped.
func (a *SerialArm) Events() <-chan string {
	return a.events
}

func (a *SerialArm) readLoop(ctx context.Context) {
	scanner := bufio.NewScanner(a.port)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := scanner.Text()
		a.logger.Debugw("controller", "line", line)
		select {
		case a.events <- line:
		default:
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		a.logger.Errorw("serial read failed", "error", err)
	}
}

// MoveToJointPositions encodes and transmits the joint command, then
// mirrors it in the model.
func (a *SerialArm) MoveToJointPositions(angles []float64) error {
	if err := a.Kinematics.MoveToJointPositions(angles); err != nil {
		return err
	}
	radians, err := EncodeJointCommand(a.CurrentJointPositionsUnchecked())
	if err != nil {
		return err
	}
	if _, err := a.port.Write([]byte(FormatJointCommand(radians))); err != nil {
		return errors.Wrap(err, "failed to write joint command")
	}
	return nil
}

// MoveToPosition solves the pose and transmits the resulting joint
// command.
func (a *SerialArm) MoveToPosition(pose *kinematics.Pose) error {
	angles, err := a.ik.Solve(pose)
	if err != nil {
		return err
	}
	return a.MoveToJointPositions(angles)
}

// Close stops the reader and closes the port.
func (a *SerialArm) Close() error {
	a.cancel()
	err := a.port.Close()
	a.workers.Wait()
	return err
}
