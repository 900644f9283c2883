package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRecipe = `
recipe "collect_and_report" {
  description = "collect local files and report on them"

  preflight "EnvCheck" "env" {
    args {
      required = ["HOME"]
    }
  }

  module "FilesystemCollector" "collect" {
    args {
      paths = ["/tmp"]
    }
  }

  module "LocalReporter" "report" {
    wants = ["collect"]
    args {
      title = "nightly run"
    }
  }
}
`

func TestParseValidRecipe(t *testing.T) {
	r, err := Parse("test.hcl", []byte(validRecipe))
	require.NoError(t, err)

	assert.Equal(t, "collect_and_report", r.Name)
	assert.Equal(t, "collect local files and report on them", r.Description)
	require.Len(t, r.Preflights, 1)
	require.Len(t, r.Modules, 2)

	assert.Equal(t, "EnvCheck", r.Preflights[0].ModuleType)
	assert.Equal(t, "env", r.Preflights[0].Name)

	assert.Equal(t, "collect", r.Modules[0].Name)
	assert.Empty(t, r.Modules[0].Wants)
	assert.Equal(t, "report", r.Modules[1].Name)
	assert.Equal(t, []string{"collect"}, r.Modules[1].Wants)

	blocks := r.AllBlocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, "env", blocks[0].Name)
	assert.Equal(t, "collect", blocks[1].Name)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Run("invalid hcl", func(t *testing.T) {
		_, err := Parse("bad.hcl", []byte(`recipe "x" {`))
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("no recipe block", func(t *testing.T) {
		_, err := Parse("empty.hcl", []byte(``))
		assert.ErrorContains(t, err, "no recipe block")
	})
}

func TestValidate(t *testing.T) {
	t.Run("duplicate instance names", func(t *testing.T) {
		_, err := Parse("dup.hcl", []byte(`
recipe "dup" {
  module "A" "x" {}
  module "B" "x" {}
}
`))
		assert.ErrorContains(t, err, "duplicate instance name 'x'")
	})

	t.Run("duplicate across preflights and modules", func(t *testing.T) {
		_, err := Parse("dup.hcl", []byte(`
recipe "dup" {
  preflight "A" "x" {}
  module "B" "x" {}
}
`))
		assert.ErrorContains(t, err, "duplicate instance name 'x'")
	})

	t.Run("wants undeclared module", func(t *testing.T) {
		_, err := Parse("ghost.hcl", []byte(`
recipe "ghost" {
  module "A" "a" {
    wants = ["ghost"]
  }
}
`))
		assert.ErrorContains(t, err, "wants undeclared module 'ghost'")
	})

	t.Run("wants a preflight", func(t *testing.T) {
		// Preflights finish before the processing phase; they are not
		// valid wants targets.
		_, err := Parse("pf.hcl", []byte(`
recipe "pf" {
  preflight "A" "pre" {}
  module "B" "b" {
    wants = ["pre"]
  }
}
`))
		assert.ErrorContains(t, err, "wants undeclared module 'pre'")
	})

	t.Run("preflight with wants", func(t *testing.T) {
		_, err := Parse("pf.hcl", []byte(`
recipe "pf" {
  preflight "A" "pre" {
    wants = ["x"]
  }
  module "B" "x" {}
}
`))
		assert.ErrorContains(t, err, "preflight 'pre' declares wants")
	})

	t.Run("self want", func(t *testing.T) {
		_, err := Parse("self.hcl", []byte(`
recipe "self" {
  module "A" "a" {
    wants = ["a"]
  }
}
`))
		assert.ErrorContains(t, err, "wants itself")
	})

	t.Run("dependency cycle", func(t *testing.T) {
		_, err := Parse("cycle.hcl", []byte(`
recipe "cycle" {
  module "A" "a" {
    wants = ["c"]
  }
  module "B" "b" {
    wants = ["a"]
  }
  module "C" "c" {
    wants = ["b"]
  }
}
`))
		assert.ErrorContains(t, err, "dependency cycle")
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		_, err := Parse("diamond.hcl", []byte(`
recipe "diamond" {
  module "A" "a" {}
  module "B" "b" {
    wants = ["a"]
  }
  module "C" "c" {
    wants = ["a"]
  }
  module "D" "d" {
    wants = ["b", "c"]
  }
}
`))
		assert.NoError(t, err)
	})
}
