package config

import (
	"fmt"
	"os"
)

func Template() string {
	return berctlTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(berctlTemplate), 0o600)
}

const berctlTemplate = `# berctl configuration

[codec]
# deepest composite nesting accepted on decode; 0 disables the cap
max_depth = 512

[frame]
max_payload_bytes = 8388608
# none | gzip | lz4 | snappy | zstd
compression = "none"

[output]
# hex | raw
format = "hex"
indent = true

[log]
level = "info"
`
