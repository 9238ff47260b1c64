package eh

import "github.com/pkg/errors"

type moduleHook struct {
	name string
	init func() error
	exit func()
}

var modules []moduleHook

// RegisterModule appends an (init, exit) hook pair to the module registry.
// GlobalInit runs every hook's init in registration order; GlobalExit (and a
// failed GlobalInit) runs exit in reverse order, undoing only the modules
// that actually initialized.
//
// This exists for pluggable collaborators that the core must not import by
// name — the platform port (port/hosted, port/baremetal) and, when built
// with the pended context-switch variant, its dispatcher goroutine. Call it
// from your own setup code before GlobalInit, not from a task.
func RegisterModule(name string, init func() error, exit func()) {
	modules = append(modules, moduleHook{name: name, init: init, exit: exit})
}

func moduleGroupInit() error {
	for i, m := range modules {
		if m.init == nil {
			continue
		}
		if err := m.init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				if modules[j].exit != nil {
					modules[j].exit()
				}
			}
			return errors.Wrapf(err, "eh: module %q init failed", m.name)
		}
	}
	return nil
}

// ResetModules clears the module registry. Production code has no reason to
// call this — modules are meant to be registered once, at startup — but it
// lets tests that each register their own throwaway modules start from a
// clean registry instead of accumulating across the whole test binary.
func ResetModules() {
	modules = nil
}

func moduleGroupExit() {
	for i := len(modules) - 1; i >= 0; i-- {
		if modules[i].exit != nil {
			modules[i].exit()
		}
	}
}
