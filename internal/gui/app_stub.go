//go:build !gui

package gui

import (
	"fmt"

	"github.com/Anthony-Giacinto/pendulum/internal/config"
)

// Run reports that the graphical window needs the gui build tag.
func Run(cfg *config.Config) error {
	return fmt.Errorf("the graphical window requires building with the 'gui' tag: go build -tags gui ./cmd/pendulum")
}
