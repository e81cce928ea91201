// Command sixdof computes forward and inverse kinematics for the six
// axis arm and can transmit joint commands to its motion controller.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/robomotive/sixdof/arm"
	"github.com/robomotive/sixdof/kinematics"
)

var logger = golog.NewDevelopmentLogger("sixdof")

func main() {
	app := &cli.App{
		Name:  "sixdof",
		Usage: "forward/inverse kinematics for the six axis arm",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "model",
				Usage: "kinematics model JSON file (default: built-in arm)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "fk",
				Usage:     "joint angles (degrees) to end effector pose",
				ArgsUsage: "j1,j2,j3,j4,j5,j6",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "transforms",
						Usage: "also print the six cumulative link transforms",
					},
				},
				Action: runFK,
			},
			{
				Name:      "ik",
				Usage:     "pose (x,y,z mm, a,b,c degrees) to joint angles",
				ArgsUsage: "x,y,z,a,b,c",
				Action:    runIK,
			},
			{
				Name:      "send",
				Usage:     "transmit joint angles to the motion controller",
				ArgsUsage: "j1,j2,j3,j4,j5,j6",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "port",
						Usage:    "serial port of the controller",
						Required: true,
					},
				},
				Action: runSend,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func loadModel(c *cli.Context) (*kinematics.Model, error) {
	if path := c.String("model"); path != "" {
		return kinematics.ParseModelJSONFile(path, logger)
	}
	return kinematics.DefaultModel(logger), nil
}

func parseFloats(arg string, want int) ([]float64, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != want {
		return nil, errors.Errorf("need %d comma separated values, got %d", want, len(parts))
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad value %q", p)
		}
		vals[i] = v
	}
	return vals, nil
}

func runFK(c *cli.Context) error {
	model, err := loadModel(c)
	if err != nil {
		return err
	}
	angles, err := parseFloats(c.Args().First(), kinematics.Joints)
	if err != nil {
		return err
	}
	pose, err := model.Forward(angles)
	if err != nil {
		return err
	}
	fmt.Println(pose)
	if c.Bool("transforms") {
		transforms, err := model.CumulativeTransforms(angles)
		if err != nil {
			return err
		}
		for i, t := range transforms {
			p, _ := kinematics.PoseFromTransform(t)
			fmt.Printf("link %d: %v\n", i+1, p)
		}
	}
	return nil
}

func runIK(c *cli.Context) error {
	model, err := loadModel(c)
	if err != nil {
		return err
	}
	vals, err := parseFloats(c.Args().First(), 6)
	if err != nil {
		return err
	}
	ik, err := kinematics.NewSphericalWristSolver(model, logger)
	if err != nil {
		return err
	}
	pose := &kinematics.Pose{X: vals[0], Y: vals[1], Z: vals[2], A: vals[3], B: vals[4], C: vals[5]}
	angles, err := ik.Solve(pose)
	if err != nil {
		return err
	}
	for i, a := range angles {
		fmt.Printf("j%d: %.4f\n", i+1, a)
	}
	return nil
}

func runSend(c *cli.Context) error {
	model, err := loadModel(c)
	if err != nil {
		return err
	}
	angles, err := parseFloats(c.Args().First(), kinematics.Joints)
	if err != nil {
		return err
	}
	a, err := arm.NewSerialArm(c.String("port"), model, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Errorw("failed to close arm", "error", err)
		}
	}()
	return a.MoveToJointPositions(angles)
}
