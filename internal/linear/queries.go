package linear

// GraphQL documents for the Linear API.

const issueFields = `
        id
        identifier
        title
        description
        priority
        url
        createdAt
        updatedAt
        state {
          id
          name
          type
          color
          position
        }
        labels {
          nodes {
            id
            name
            color
          }
        }
        assignee {
          id
          name
          displayName
          email
        }
        creator {
          id
          name
          displayName
          email
        }
        project {
          id
          name
        }
`

const queryViewer = `
query Viewer {
  viewer {
    id
    name
    email
  }
}
`

const queryTeams = `
query Teams($after: String) {
  teams(first: 100, after: $after) {
    nodes {
      id
      name
      key
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}
`

const queryProjects = `
query TeamProjects($teamId: String!, $after: String) {
  team(id: $teamId) {
    projects(first: 100, after: $after) {
      nodes {
        id
        name
        state
        color
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}
`

const queryTeamIssues = `
query TeamIssues($teamId: String!, $first: Int!, $after: String) {
  team(id: $teamId) {
    issues(first: $first, after: $after, orderBy: updatedAt) {
      nodes {` + issueFields + `      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}
`

const queryProjectIssues = `
query ProjectIssues($projectId: String!, $first: Int!, $after: String) {
  project(id: $projectId) {
    issues(first: $first, after: $after, orderBy: updatedAt) {
      nodes {` + issueFields + `      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}
`

const queryWorkflowStates = `
query WorkflowStates($teamId: String!) {
  team(id: $teamId) {
    states(first: 50) {
      nodes {
        id
        name
        type
        color
        position
      }
    }
  }
}
`

const queryLabels = `
query TeamLabels($teamId: String!) {
  team(id: $teamId) {
    labels(first: 100) {
      nodes {
        id
        name
        color
      }
    }
  }
}
`

const queryUsers = `
query TeamMembers($teamId: String!) {
  team(id: $teamId) {
    members(first: 100) {
      nodes {
        id
        name
        displayName
        email
      }
    }
  }
}
`

const queryComments = `
query IssueComments($issueId: String!) {
  issue(id: $issueId) {
    comments(first: 100) {
      nodes {
        id
        body
        createdAt
        user {
          id
          name
          displayName
          email
        }
      }
    }
  }
}
`

const mutationIssueUpdate = `
mutation IssueUpdate($issueId: String!, $input: IssueUpdateInput!) {
  issueUpdate(id: $issueId, input: $input) {
    success
    issue {` + issueFields + `    }
  }
}
`

const mutationIssueCreate = `
mutation IssueCreate($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    success
    issue {` + issueFields + `    }
  }
}
`

const mutationIssueArchive = `
mutation IssueArchive($issueId: String!) {
  issueArchive(id: $issueId) {
    success
  }
}
`

const mutationCommentCreate = `
mutation CommentCreate($input: CommentCreateInput!) {
  commentCreate(input: $input) {
    success
    comment {
      id
      body
      createdAt
      user {
        id
        name
        displayName
        email
      }
    }
  }
}
`
