// SPDX-License-Identifier: BSD-3-Clause

// Package process bridges service.Service into an oversight.ChildProcess:
// panics inside a service's Run method are recovered and reported as an
// error carrying the service's name, so a crashed matrix scanner or a
// wedged Vial handler looks like any other failed child to the supervisor.
package process
