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

package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

type selectionData struct {
	Names []string
}

// RenderSelection renders the selector email body for any number of names.
func RenderSelection(names []string) (string, error) {
	var b bytes.Buffer
	if err := templates.ExecuteTemplate(&b, "selection.html.tmpl", selectionData{Names: names}); err != nil {
		return "", fmt.Errorf("render selection email: %w", err)
	}
	return b.String(), nil
}

// SelectionMessage builds the selector email.
func SelectionMessage(from string, to []string, names []string) (Message, error) {
	body, err := RenderSelection(names)
	if err != nil {
		return Message{}, err
	}
	return Message{
		From:    from,
		To:      to,
		Subject: SelectionSubject,
		HTML:    body,
	}, nil
}

// ParseRecipients splits a comma separated address list.
func ParseRecipients(s string) []string {
	var out []string
	for _, addr := range strings.Split(s, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
