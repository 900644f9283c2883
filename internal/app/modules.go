package app

import (
	"github.com/vk/driftflow/internal/registry"
	"github.com/vk/driftflow/modules/envcheck"
	"github.com/vk/driftflow/modules/filesystem"
	"github.com/vk/driftflow/modules/httpfetch"
	"github.com/vk/driftflow/modules/report"
)

// coreModules is the definitive list of all built-in modules that are
// compiled into the driftflow binary.
var coreModules = []registry.Registrar{
	&envcheck.Module{},
	&filesystem.Module{},
	&httpfetch.Module{},
	&report.Module{},
}
