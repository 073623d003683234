package mcpserver

// Tool descriptions with interpretation guidance for LLMs.

func describeProgress() string {
	return `Computes subtask completion for parent issues from a sprint snapshot.

USE WHEN:
- Answering "how far along is this story?"
- Listing which parent issues still have open subtasks
- Checking a specific issue's sibling group before a standup

INTERPRETING RESULTS:
- progress is the rounded percentage of Done siblings sharing one parent
- A subtask reports the progress of its whole sibling group, itself included
- Issues without a parent report 0
- missing lists requested ids that are not in the snapshot

METRICS RETURNED:
- Without issue_ids: groups (parent_id, parent_title, done, total, progress, subtasks) and a summary
- With issue_ids: issues (issue_id, parent_id, progress)`
}

func describeBurndown() string {
	return `Builds the daily burndown series for a sprint: remaining story points against the ideal line.

USE WHEN:
- Judging whether a sprint is on track
- Spotting plateaus where nothing was completed for several days
- Comparing burn rate between sprints

INTERPRETING RESULTS:
- remaining above ideal means the team is behind plan
- A flat stretch of remaining means no points were completed on those days
- Points completed before the sprint started never appear as burn
- Issues without story points count as 0
- attribution=last burns reopened issues on their final Done date

METRICS RETURNED:
- points: one entry per calendar day (day label, date, remaining, ideal)
- total_points, burned_points, duration_days, ideal_points_per_day`
}

func describeUtilization() string {
	return `Aggregates per-engineer workload across all issues and bands each engineer by utilization.

USE WHEN:
- Finding engineers who are overloaded or idle
- Balancing assignments before sprint planning
- Reporting team-wide activity

INTERPRETING RESULTS:
- utilization_rate = (completed + in progress) / total assigned, as a percentage
- band high is at or above the high threshold (default 80), low is below the low threshold (default 50)
- current_sprint_tasks counts assignments in the selected (default active) sprint
- A high std_dev_utilization means the load is uneven across the team

METRICS RETURNED:
- engineers, sorted by utilization_rate descending
- summary: total_engineers, average_utilization, std_dev_utilization, total_active_tasks, total_completed_tasks`
}

func describeHealth() string {
	return `Summarizes one sprint: scope, completed points, work waiting in review, days left, and its burndown.

USE WHEN:
- Preparing a sprint review or mid-sprint check-in
- Answering "will we finish on time?"

INTERPRETING RESULTS:
- progress is completed_points / total_points as a percentage
- tasks_in_review piling up suggests a review bottleneck
- days_left is negative once the sprint end date has passed
- completed_points counts current Done status regardless of completion date

METRICS RETURNED:
- sprint_id, sprint_name, total_issues, total_points, completed_points, progress, tasks_in_review, days_left
- burndown: the same series as generate_burndown`
}

func describeVelocity() string {
	return `Computes completed points per sprint and forecasts the next sprint with a linear trend.

USE WHEN:
- Sizing the next sprint's commitment
- Checking whether delivery is speeding up or slowing down
- Estimating team capacity in hours for the active sprint

INTERPRETING RESULTS:
- Only Completed sprints feed the trend; the Active sprint is listed but excluded
- forecast is the fitted line extended one sprint, rounded; 0 with fewer than 2 completed sprints
- fit.slope > 0 means velocity is rising; fit.r_squared near 1 means the trend is consistent
- active.capacity_hours sums each member's daily capacity (default 8h) over the sprint days

METRICS RETURNED:
- sprints (velocity, committed), completed_sprints, average_velocity, window, forecast, fit, active`
}

func describeTeam() string {
	return `Counts assigned and completed issues for each team member.

USE WHEN:
- Comparing workload across the team
- Spotting members whose work is not getting finished

INTERPRETING RESULTS:
- Issues are matched to members by assignee == user id
- completion_rate is round(100*completed/tasks); 0 for a member with no tasks
- backlog_size counts Todo issues in scope; unassigned counts issues with no assignee

METRICS RETURNED:
- members (user_id, name, role, tasks, completed, completion_rate)
- average_completion_rate, backlog_size, unassigned`
}

func describeAssign() string {
	return `Suggests who could take open tasks, grouped by the skill their title asks for.

USE WHEN:
- Planning who picks up unassigned work
- Checking whether the team has anyone for frontend, backend or design tasks

INTERPRETING RESULTS:
- Skills come from title keywords: ui/frontend, api/backend, design/ui
- A member suits a skill when it is listed in their skills or their role is Developer
- Tasks are handed out round-robin within each skill; a task may appear under several skills
- unstaffed lists skills with tasks but no suitable member; unmatched lists tasks with no skill keyword

METRICS RETURNED:
- groups (skill, members, suggestions of issue_id, title, priority, user_id)
- tasks, unstaffed, unmatched`
}

func describeDashboard() string {
	return `Summarizes one user's work: open issues by status, urgent items and the active sprint.

USE WHEN:
- Answering "what should I work on?" for a user
- Preparing a standup update

INTERPRETING RESULTS:
- urgent holds up to three open P0/P1 issues, P0 first
- sprint covers the active sprint: progress is done issues over all issues in it
- blocked counts subtasks in the active sprint still in Todo

METRICS RETURNED:
- todo, in_progress, in_review, urgent, completed, completion_rate
- sprint (issues, done, progress, blocked, days_left)`
}

func describeReport() string {
	return `Runs every analysis over the snapshot at once: sprint health for each sprint, utilization, velocity and subtask progress.

USE WHEN:
- A broad overview is needed before drilling into a specific tool
- Producing a written sprint summary

INTERPRETING RESULTS:
- sprints are ordered by start date; active_sprint_id names the sprint in progress
- See the individual tools for the meaning of each section

METRICS RETURNED:
- metadata, active_sprint_id, sprints, utilization, velocity, progress`
}

func describePermission() string {
	return `Answers whether a role may perform an action on issues or sprints.

USE WHEN:
- Explaining why a user cannot edit something
- Checking an issue-level edit for a specific user

INTERPRETING RESULTS:
- Admin may do anything; Product Owner manages issues and updates sprints
- Developer reads and updates issues; Designer and Viewer only read issues
- For an update on a specific issue, the assignee may always edit it
- This is advisory; nothing enforces the answer

METRICS RETURNED:
- role, resource, action, issue_id, user_id, allowed`
}
