// Package discovery implements best-effort printer detection via
// mDNS/DNS-SD.
//
// Networked Neptune printers (and print hosts sitting next to them, such
// as Klipper/Moonraker boxes named after the printer) advertise plain
// "_http._tcp" services whose hostnames carry the printer family name,
// e.g. "neptune3pro.local". The scanner browses for those services and
// normalizes matching hostnames to the canonical printer identifiers used
// by the detection table.
//
// Detection is best-effort by design: an empty result or an unrecognized
// identifier simply leaves the defaulting heuristic untouched. Failures
// here must never block the settings workflow.
package discovery
