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

// Package mail renders and delivers the recipe selector email.
//
// A Sender delivers a Message. SMTPSender talks to a mail server, LogSender
// only logs the message and is used when no server is configured.
//
//	msg, err := mail.SelectionMessage("recipes@example.com", []string{"cook@example.com"}, names)
//	if err != nil {
//	    return err
//	}
//	err = sender.Send(ctx, msg)
package mail
