package kinematics

import (
	"encoding/json"
	"os"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/robomotive/sixdof/utils"
)

// ModelConfig represents all supported fields in a kinematics JSON
// file.
type ModelConfig struct {
	Name     string          `json:"name"`
	DHParams []DHParamConfig `json:"dhParams"`
}

// DHParamConfig is one row of the DH table as stored on disk. Angles
// are in degrees there; HomeOffset is the fixed angle added to the
// joint value before the DH matrix is built. Min and Max both zero
// means the default +-180 degree limits.
type DHParamConfig struct {
	ID         string  `json:"id"`
	A          float64 `json:"a"`
	D          float64 `json:"d"`
	Alpha      float64 `json:"alpha"`
	HomeOffset float64 `json:"homeOffset"`
	Max        float64 `json:"max,omitempty"`
	Min        float64 `json:"min,omitempty"`
}

// UnmarshalModelJSON parses the given JSON data into a Model.
func UnmarshalModelJSON(jsonData []byte, logger golog.Logger) (*Model, error) {
	// empty data probably means the robot component has no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	cfg := &ModelConfig{}
	if err := json.Unmarshal(jsonData, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal json file")
	}
	return cfg.ParseConfig(logger)
}

// ParseConfig converts the ModelConfig into a full Model.
func (cfg *ModelConfig) ParseConfig(logger golog.Logger) (*Model, error) {
	if len(cfg.DHParams) != Joints {
		return nil, errors.Errorf("need a %d entry DH table, got %d", Joints, len(cfg.DHParams))
	}
	dh := make([]DHParam, len(cfg.DHParams))
	offsets := make([]float64, len(cfg.DHParams))
	limits := make([]Limit, len(cfg.DHParams))
	for i, p := range cfg.DHParams {
		dh[i] = DHParam{A: p.A, Alpha: utils.DegToRad(p.Alpha), D: p.D}
		offsets[i] = p.HomeOffset
		if p.Min == 0 && p.Max == 0 {
			limits[i] = Limit{Min: -180, Max: 180}
		} else {
			limits[i] = Limit{Min: p.Min, Max: p.Max}
		}
	}
	return NewModel(cfg.Name, dh, offsets, limits, logger)
}

// ParseModelJSONFile reads a given file and parses the contained JSON
// data.
func ParseModelJSONFile(filename string, logger golog.Logger) (*Model, error) {
	//nolint:gosec
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData, logger)
}
