// Package app runs the phoebe startup sequence.
//
// The Controller drives a fixed order of steps against its collaborators:
//
//  1. Initialize the host (front end) and the engine. A failure here is fatal.
//  2. Register the front end and engine options, then resolve the
//     configuration into the option registry.
//  3. Process the command line left to right: parameter files are loaded,
//     help and version print their screen and end startup successfully,
//     unknown switches are ignored.
//  4. Choose a Decision from the configuration status: a one-time notice
//     for a first run or an imported configuration, and whether the
//     settings dialog opens.
//  5. Hand control to the host loop, then tear down the engine and the host.
//
// Application wires the production collaborators (console host, engine,
// configuration store, parameter file loader) from a Config.
package app
