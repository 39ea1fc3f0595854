// Package launcher hands a composed invocation to the outside world.
//
// Two implementations exist: ExecLauncher executes the launch command
// (replacing the current process on linux, running a foreground child
// elsewhere), and DisplayLauncher renders the command as a
// shell-quoted line for inspection. Both consume the invocation
// read-only; composition is finished by the time a Launcher sees it.
package launcher
