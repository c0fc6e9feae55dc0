// Package config loads teleport configuration files.
//
// A config file is JSON, YAML or TOML, picked by extension. Keys that are
// absent keep their defaults; unknown keys are an error.
//
// # Configuration File Structure
//
//	teleport:
//	  placeholderTag: portal
//	  redirectEvents: [close, cancel, "app:*"]
//	log:
//	  level: debug
//	  format: json
//	metrics:
//	  enabled: true
//	  namespace: myapp
//	tracing:
//	  enabled: true
//	  tracerName: myapp/teleport
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(path)
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
