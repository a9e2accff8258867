package sqlgen

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type ControlOption struct {
	// the initial number of tables.
	InitTableCount int `toml:"init-table-count"`
	// the number of rows to initialize for each table.
	InitRowCount int `toml:"init-row-count"`
	// the number of Columns for each tables.
	InitColCount int `toml:"init-col-count"`
	// the max number of tables.
	MaxTableNum int `toml:"max-table-num"`
	// the max number of joins appended to the base table of a query.
	// Keep the total references of a table below 10, see AliasTracker.
	MaxJoinCount int `toml:"max-join-count"`
	// database adapter used for quoting and alias limits.
	Adapter string `toml:"adapter"`
	// generate SQL weight
	Weight *Weight `toml:"weight"`
}

// Weight holds ratios in percent and rule weights.
type Weight struct {
	// chance that a joined table is one already referenced in the query.
	SelfJoinRatio int `toml:"self-join-ratio"`
	// chance that a query carries hand written join fragments.
	StringJoinRatio int `toml:"string-join-ratio"`
	// chance that a join asks for "<table>_<parent>" instead of the table name.
	ComposedAliasRatio int `toml:"composed-alias-ratio"`
	// chance that a new table gets a name as long as the adapter allows.
	LongTableNameRatio int `toml:"long-table-name-ratio"`

	CreateTable  int `toml:"create-table"`
	InsertInto   int `toml:"insert-into"`
	SingleSelect int `toml:"single-select"`
	JoinSelect   int `toml:"join-select"`
}

func DefaultControlOption() *ControlOption {
	cloneWeight := DefaultWeight
	return &ControlOption{
		InitTableCount: 5,
		InitRowCount:   10,
		InitColCount:   5,
		MaxTableNum:    10,
		MaxJoinCount:   5,
		Adapter:        AdapterMySQL,
		Weight:         &cloneWeight,
	}
}

var DefaultWeight = Weight{
	SelfJoinRatio:      40,
	StringJoinRatio:    30,
	ComposedAliasRatio: 25,
	LongTableNameRatio: 10,
	CreateTable:        1,
	InsertInto:         3,
	SingleSelect:       2,
	JoinSelect:         10,
}

// LoadControlOption reads a TOML file on top of the default options.
func LoadControlOption(path string) (*ControlOption, error) {
	ctrl := DefaultControlOption()
	if path == "" {
		return ctrl, nil
	}
	if _, err := toml.DecodeFile(path, ctrl); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	if err := ctrl.Validate(); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return ctrl, nil
}

func (c *ControlOption) Validate() error {
	if c.InitColCount <= 0 {
		return errors.Errorf("init-col-count must be positive, got %d", c.InitColCount)
	}
	if c.MaxTableNum < c.InitTableCount {
		return errors.Errorf("max-table-num %d is less than init-table-count %d", c.MaxTableNum, c.InitTableCount)
	}
	if c.MaxJoinCount < 1 || c.MaxJoinCount > 6 {
		return errors.Errorf("max-join-count must be in [1, 6], got %d", c.MaxJoinCount)
	}
	if _, err := AdapterByName(c.Adapter); err != nil {
		return err
	}
	if c.Weight == nil {
		return errors.New("weight section is missing")
	}
	for _, r := range []int{c.Weight.SelfJoinRatio, c.Weight.StringJoinRatio,
		c.Weight.ComposedAliasRatio, c.Weight.LongTableNameRatio} {
		if r < 0 || r > ProbabilityMax {
			return errors.Errorf("ratio %d out of range [0, %d]", r, ProbabilityMax)
		}
	}
	return nil
}
