// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ClassPlan Contributors

// Package schedule holds the planning domain: subjects, rooms, groups,
// teacher profiles with availability windows, assignments, schedule
// slots, and conflict records.
//
// Conflict records are stored and listed but never generated here: no
// overlap detection or timetable generation algorithm exists in this
// system. The categorized record types exist so that resolution workflow
// and reporting have a stable schema to build on.
package schedule
