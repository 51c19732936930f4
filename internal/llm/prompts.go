package llm

const intakePrompt = `You are a skill-signal extraction system for student profiles. Analyze the profile below and produce one signal per skill for exactly these six skills: problem_solving, communication, technical_skills, creativity, leadership, self_management.

For each skill report:
- evidence_found: true only if the profile text directly supports the skill
- evidence_phrases: up to 5 short quotes from the profile (empty if none)
- evidence_sources: which sections the quotes came from, out of "interests", "goals", "past_activities", "achievements", "challenges"
- confidence: 0.0-1.0 strength of the evidence
- reasoning: one sentence explaining the judgment

Do not guess. A skill with no supporting text gets evidence_found false, an empty phrase list, and low confidence.

Respond ONLY with JSON, no markdown fences:
{"signals":[{"skill":"problem_solving","evidence_found":true,"evidence_phrases":["..."],"evidence_sources":["past_activities"],"confidence":0.8,"reasoning":"..."}]}

Profile:
%s`

const gapPrompt = `You are a skill-gap analyst. Given a student profile and the extracted skill signals, estimate each skill's current level and a realistic improvement target.

For each of the six skills report:
- current_level: 0-100 estimate of where the student is now, grounded in the signals
- long_term_target_score: 0-100 aspirational level the student could reach
- reasoning: one sentence

Respond ONLY with JSON, no markdown fences:
{"gaps":[{"skill":"problem_solving","current_level":40,"long_term_target_score":80,"reasoning":"..."}]}

Profile:
%s

Skill signals:
%s`

const recommendPrompt = `You are an opportunity recommender for students. Given a profile, its skill signals, and (when present) a gap analysis, suggest 3-6 concrete programs, clubs, competitions, or courses.

For each recommendation report:
- title: the program's name
- provider: who runs it
- target_skill: which of the six skills it develops (problem_solving, communication, technical_skills, creativity, leadership, self_management)
- description: one sentence
- reasoning: why it fits this student
- evidence_sources: which profile sections support the fit, out of "interests", "goals", "past_activities", "achievements", "challenges"

Respond ONLY with JSON, no markdown fences:
{"recommendations":[{"title":"...","provider":"...","target_skill":"technical_skills","description":"...","reasoning":"...","evidence_sources":["interests"]}]}

Profile:
%s

Skill signals:
%s

Gap analysis:
%s`

const planPrompt = `You are a study planner. Given a student profile, skill signals, gap analysis, and recommendations, produce a 4-week action plan focused on the skills with the largest positive gaps.

Rules:
- exactly 4 weeks, numbered 1 to 4
- every task names one of the six skills (problem_solving, communication, technical_skills, creativity, leadership, self_management)
- estimated_time_hours per task, realistic for a student
- difficulty is one of "low", "medium", "high"
- expected_skill_gain is 0-100 points the task should add toward the skill
- evidence_source names the profile section the task builds on, out of "interests", "goals", "past_activities", "achievements", "challenges"

Respond ONLY with JSON, no markdown fences:
{"weeks":[{"week":1,"theme":"...","tasks":[{"title":"...","related_skill":"problem_solving","skill_gap_addressed":30,"expected_skill_gain":8,"estimated_time_hours":3,"difficulty":"medium","evidence_source":"past_activities","reasoning":"..."}]}]}

Profile:
%s

Skill signals:
%s

Gap analysis:
%s

Recommendations:
%s`
