package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// RobotgoInjector performs actions through the OS input synthesis layer:
// key taps for paging, mouse wheel events for scrolling.
type RobotgoInjector struct{}

// NewRobotgoInjector creates a RobotgoInjector.
func NewRobotgoInjector() *RobotgoInjector {
	return &RobotgoInjector{}
}

// Inject implements Injector.
func (r *RobotgoInjector) Inject(req Request) error {
	switch req.Action {
	case PageNext:
		if err := robotgo.KeyTap("pagedown"); err != nil {
			return fmt.Errorf("key tap pagedown: %w", err)
		}
	case PagePrevious:
		if err := robotgo.KeyTap("pageup"); err != nil {
			return fmt.Errorf("key tap pageup: %w", err)
		}
	case ScrollBy:
		robotgo.Scroll(0, req.Delta)
	default:
		return fmt.Errorf("unknown action: %s", req.Action)
	}
	return nil
}
