package cli

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the directory that holds per-app config directories.
const HomeEnv = "GROWBUF_HOME"

// Paths locates an app's files under the growbuf root: $GROWBUF_HOME when
// set, ~/.growbuf otherwise.
type Paths struct {
	Root string
	App  string
}

// NewPaths resolves the root directory for appName.
func NewPaths(appName string) (*Paths, error) {
	root := os.Getenv(HomeEnv)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		root = filepath.Join(home, DefaultBaseDir)
	}
	return &Paths{Root: root, App: appName}, nil
}

// AppDir is <root>/<app>.
func (p *Paths) AppDir() string {
	return filepath.Join(p.Root, p.App)
}

// ConfigFile is <root>/<app>/config.yaml.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir(), DefaultConfigFile)
}

// EnsureAppDir creates AppDir with its parents.
func (p *Paths) EnsureAppDir() error {
	return os.MkdirAll(p.AppDir(), 0755)
}
