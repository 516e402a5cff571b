package workload

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/homier/unordered"
)

// Config describes the random operation mix each worker applies.
type Config struct {
	Workers  int    `toml:"workers"`
	Ops      int    `toml:"ops"`
	KeySpace int    `toml:"key_space"`
	Seed     uint64 `toml:"seed"`
	Multi    bool   `toml:"multi"`
}

// File is the layout of a stress configuration file.
type File struct {
	Table    unordered.Config `toml:"table"`
	Workload Config           `toml:"workload"`
}

// ErrInvalidWorkload is returned for a workload section that cannot run.
var ErrInvalidWorkload = errors.New("invalid workload")

func DefaultFile() File {
	return File{
		Table: unordered.DefaultConfig(),
		Workload: Config{
			Workers:  4,
			Ops:      100_000,
			KeySpace: 10_000,
			Seed:     1,
		},
	}
}

func (f File) Validate() error {
	if err := f.Table.Validate(); err != nil {
		return errors.WithMessage(err, "[table]")
	}

	w := f.Workload
	switch {
	case w.Workers <= 0:
		return errors.Wrapf(ErrInvalidWorkload, "workers = %d", w.Workers)
	case w.Ops < 0:
		return errors.Wrapf(ErrInvalidWorkload, "ops = %d", w.Ops)
	case w.KeySpace <= 0:
		return errors.Wrapf(ErrInvalidWorkload, "key_space = %d", w.KeySpace)
	}

	return nil
}

// Parse decodes a TOML document over DefaultFile.
func Parse(data string) (File, error) {
	f := DefaultFile()
	if _, err := toml.Decode(data, &f); err != nil {
		return File{}, errors.Wrap(err, "decode stress config")
	}

	return f, f.Validate()
}

// Load reads a TOML file over DefaultFile.
func Load(path string) (File, error) {
	f := DefaultFile()
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, errors.Wrapf(err, "load stress config %s", path)
	}

	return f, f.Validate()
}
