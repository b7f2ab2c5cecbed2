// Package process cleans up browser process trees left by the chrome engine.
package process
