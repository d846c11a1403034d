// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package selector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipes_selector_runs_total",
		Help: "Total number of recipe selector runs",
	})

	picks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipes_selector_picks_total",
		Help: "Total number of recipes picked by the selector",
	})

	resets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipes_selector_cycle_resets_total",
		Help: "Total number of selection history resets",
	})

	partials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipes_selector_partial_runs_total",
		Help: "Total number of runs that picked fewer recipes than requested",
	})

	mailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipes_selector_mail_failures_total",
		Help: "Total number of selector emails that failed to send",
	})
)
