// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant answers free-text questions about the portfolio.
//
// A knowledge base of topic entries is built from the profile. Queries are
// cleaned of punctuation and stopwords, then scored against every entry's
// keywords (weight 0.6) and sample questions (weight 0.4) with a
// typo-tolerant token distance. Scores run from 0 (perfect) to 1; the best
// entry is accepted only when it scores strictly below AcceptThreshold.
//
// # Usage
//
//	proc := assistant.NewProcessor(assistant.BuildKnowledgeBase(profile))
//	resp := proc.Process("what are your skills?")
//	fmt.Println(resp.Text)
package assistant
