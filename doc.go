/*
podkit is the instrumentation and health-reporting layer shared by the demo
services in this repository. It is intended to cut down on the boilerplate
required for observability and good behavior in a container orchestration
environment.

It provides a process-wide metrics registry with Prometheus exposition, the
/health and /ready probe routes, request middleware that counts and times every
inbound request, and a flat dispatch table that answers unknown routes with a
standard JSON error envelope.

The two services built on it live under cmd/webapp and cmd/counter.
*/

package podkit
