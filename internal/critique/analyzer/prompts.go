package analyzer

// The three per-chunk tasks are deliberately separate prompts: each one is an
// independent model call that can fail and be retried/dropped on its own.

const sectionsPrompt = `Extract the important sections from the research paper text below.
Reply with exactly these labeled lines. Leave a label empty when the text does not cover it.
Goal: the main goal of the research
Hypothesis: the main hypothesis or research question
Methods: the methodology used in the research
Results: the main results or findings
Conclusion: the conclusions drawn from the results

Paper text:
%s`

const critiquePrompt = `Critique the research paper text below by identifying flaws, gaps or reasoning problems.
Reply with one labeled block:
Critique: the flaws, gaps, or reasoning problems in the paper

Paper text:
%s`

const questionsPrompt = `Generate smart, critical follow-up questions a peer reviewer would ask about the research paper text below.
Reply with exactly these labeled lines:
MainQuestion: the single most important question
SubQuestions:
- one question per line, as a dash list
AddressedQuestions: a short narrative on which open questions the paper already addresses

Paper text:
%s`
