// Package tui implements the interactive light picker.
//
// The picker runs one discovery session on startup, lists the lights it
// found, and lets the user toggle a light's power with enter, rescan
// with 'r', and filter the list by typing. It is built on bubbletea
// with the bubbles list, spinner and help components.
package tui
