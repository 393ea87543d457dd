package main

import (
	"os"
	"runtime"

	"github.com/energye/systray"
)

// runTray shows the icon and blocks until Quit is chosen.
func runTray(icon []byte, iconPath string) {
	// Lock this goroutine to an OS thread so that the hidden window created
	// by systray and the GetMessage loop share the same thread.
	runtime.LockOSThread()
	systray.Run(func() { onTrayReady(icon, iconPath) }, func() {})
}

func onTrayReady(icon []byte, iconPath string) {
	systray.SetIcon(icon)
	systray.SetTooltip(iconPath)

	mPath := systray.AddMenuItem(iconPath, "Icon file in use")
	mPath.Disable()

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Exit icontray")
	mQuit.Click(func() {
		systray.Quit()
		os.Exit(0)
	})
}
